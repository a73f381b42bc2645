package reservation

import (
	"strings"

	"tripdesk/models"
)

type category int

const (
	categoryOther category = iota
	categoryAdult
	categoryChild
)

// KeywordTable drives participant-category classification of SKU text. Markets
// with different age policies can swap their own table in; the defaults cover
// the Korean-market products we ingest today.
type KeywordTable struct {
	Child []string
	Adult []string
}

// DefaultKeywords returns the standard synonym lists.
// "고등학생" (high-school student) sits in the child list to match current
// partner products; product owners for other markets may need it moved.
func DefaultKeywords() KeywordTable {
	return KeywordTable{
		Child: []string{"child", "kid", "youth", "infant", "소아", "아동", "어린이", "유아", "청소년", "고등학생"},
		Adult: []string{"adult", "man", "woman", "성인", "대인", "어른"},
	}
}

// Classify buckets a SKU by scanning its spec/title text. Child keywords are
// checked first: they are the more specific ones ("성인+소아" combos label the
// child variant).
func (t KeywordTable) Classify(sku *models.Sku) category {
	text := strings.ToLower(strings.Join([]string{sku.Spec, sku.SpecRef, sku.Title, sku.Name}, " "))
	for _, kw := range t.Child {
		if kw != "" && strings.Contains(text, kw) {
			return categoryChild
		}
	}
	for _, kw := range t.Adult {
		if kw != "" && strings.Contains(text, kw) {
			return categoryAdult
		}
	}
	return categoryOther
}
