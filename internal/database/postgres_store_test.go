package database

import "testing"

func TestDecodeDocumentNormalizes(t *testing.T) {
	doc, err := decodeDocument(`{"orders":[{"id":7,"timestamp":1,"items":[],"totalAmount":0,"status":"completed","paymentMethod":"cash"}],"lastOrderId":3}`)
	if err != nil {
		t.Fatalf("decodeDocument() error = %v", err)
	}
	if doc.LastOrderID != 7 {
		t.Errorf("LastOrderID = %d, want 7", doc.LastOrderID)
	}
	if doc.MenuItems == nil || doc.Expenses == nil || doc.AdminCount() != 1 {
		t.Errorf("document not normalized: %+v", doc)
	}
}

func TestDecodeDocumentRejectsGarbage(t *testing.T) {
	if _, err := decodeDocument("{not json"); err == nil {
		t.Error("decodeDocument() accepted malformed data")
	}
}
