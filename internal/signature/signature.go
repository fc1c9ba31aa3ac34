package signature

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	"github.com/pcormier/po-intake/internal/entity"
)

// DocSignature is one logical document projected down to a small comparable
// shape.
type DocSignature struct {
	DocID       string `json:"doc_id"`
	Type        string `json:"type"`
	PageStart   *int   `json:"page_start,omitempty"`
	PageEnd     *int   `json:"page_end,omitempty"`
	PageCount   int    `json:"page_count"`
	LineCount   int    `json:"line_count"`
	OrderNumber string `json:"order_number,omitempty"`
}

// ParseSignature is the content-addressed fingerprint of one parse run.
// Created once per run; compared, never merged.
type ParseSignature struct {
	FileHash  string         `json:"file_hash"`
	Filename  string         `json:"filename"`
	CreatedAt time.Time      `json:"created_at"`
	Docs      []DocSignature `json:"docs"`
}

// Missing page bounds sort after every real page number.
const pageSentinel = 999999

// sortKey makes comparison independent of extraction order.
func (d DocSignature) sortKey() string {
	start, end := pageSentinel, pageSentinel
	if d.PageStart != nil {
		start = *d.PageStart
	}
	if d.PageEnd != nil {
		end = *d.PageEnd
	}
	return fmt.Sprintf("%s|%06d|%06d|%06d", d.Type, start, end, d.LineCount)
}

// Build projects structured documents into a canonical, order-independent
// parse signature.
func Build(filename, fileHash string, docs []entity.ExtractedDocument, now time.Time) ParseSignature {
	sig := ParseSignature{
		FileHash:  fileHash,
		Filename:  filename,
		CreatedAt: now,
		Docs:      make([]DocSignature, 0, len(docs)),
	}
	for i := range docs {
		d := &docs[i]
		ds := DocSignature{
			DocID:     d.DocID,
			Type:      d.DocType,
			PageStart: d.PageStart,
			PageEnd:   d.PageEnd,
			PageCount: d.PageCount(),
			LineCount: len(d.Lines),
		}
		if d.OrderNumber != nil {
			ds.OrderNumber = *d.OrderNumber
		}
		sig.Docs = append(sig.Docs, ds)
	}
	sort.Slice(sig.Docs, func(i, j int) bool {
		return sig.Docs[i].sortKey() < sig.Docs[j].sortKey()
	})
	return sig
}

// HashBytes returns the hex sha256 of file content, the key the baseline
// store is addressed by.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
