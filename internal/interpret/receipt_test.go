package interpret

import (
	"testing"

	"gastobot/internal/core"
	"gastobot/internal/lexicon"
)

const sampleReceipt = `SUPERMERCADO DIA
CUIT 30-12345678-9
FECHA: 05/03/2024
Leche 3.200
Pan 1.800
SUBTOTAL $ 23.500
TOTAL $ 23.500`

func TestReceiptInterpreter_Interpret(t *testing.T) {
	ri := NewReceiptInterpreter(lexicon.Default())

	rec := ri.Interpret(sampleReceipt, testNow)

	if rec.Type != core.Expense {
		t.Errorf("Type = %q, want expense", rec.Type)
	}
	if rec.Amount == nil || *rec.Amount != "23.500" {
		t.Errorf("Amount = %v, want 23.500", rec.Amount)
	}
	if rec.Date != "2024-03-05" {
		t.Errorf("Date = %q, want 2024-03-05", rec.Date)
	}
	if rec.Concept != "SUPERMERCADO DIA" {
		t.Errorf("Concept = %q, want SUPERMERCADO DIA", rec.Concept)
	}
	if rec.Category != "supermercado" {
		t.Errorf("Category = %q, want supermercado", rec.Category)
	}

	wantItems := []core.LineItem{
		{Label: "Leche", Price: "3.200"},
		{Label: "Pan", Price: "1.800"},
	}
	if len(rec.Items) != len(wantItems) {
		t.Fatalf("Items = %v, want %v", rec.Items, wantItems)
	}
	for i, want := range wantItems {
		if rec.Items[i] != want {
			t.Errorf("Items[%d] = %v, want %v", i, rec.Items[i], want)
		}
	}
}

func TestReceiptInterpreter_Interpret_NoTotal(t *testing.T) {
	ri := NewReceiptInterpreter(lexicon.Default())

	rec := ri.Interpret("KIOSCO EL SOL\nCaramelos 200", testNow)

	if rec.Amount != nil {
		t.Errorf("Amount = %v, want nil", rec.Amount)
	}
	if rec.HasAmount() {
		t.Error("HasAmount() should be false for a receipt without a total")
	}
	if rec.Concept != "KIOSCO EL SOL" {
		t.Errorf("Concept = %q, want KIOSCO EL SOL", rec.Concept)
	}
	if rec.Date != "2024-03-10" {
		t.Errorf("Date = %q, want processing date", rec.Date)
	}
	if len(rec.Items) != 1 || rec.Items[0].Label != "Caramelos" {
		t.Errorf("Items = %v, want one Caramelos item", rec.Items)
	}
}

func TestReceiptInterpreter_LineItemRejection(t *testing.T) {
	ri := NewReceiptInterpreter(lexicon.Default())

	ocr := "Yerba 4.500\nTOTAL 4.500\nSubtotal 4.500\nIVA 780"
	rec := ri.Interpret(ocr, testNow)

	if len(rec.Items) != 1 {
		t.Fatalf("Items = %v, want only the Yerba line", rec.Items)
	}
	if rec.Items[0].Label != "Yerba" || rec.Items[0].Price != "4.500" {
		t.Errorf("Items[0] = %v, want {Yerba 4.500}", rec.Items[0])
	}
}

func TestReceiptInterpreter_EmptyText(t *testing.T) {
	ri := NewReceiptInterpreter(lexicon.Default())

	rec := ri.Interpret("", testNow)

	if rec.Amount != nil {
		t.Errorf("Amount = %v, want nil", rec.Amount)
	}
	if rec.Category != "otros" {
		t.Errorf("Category = %q, want otros", rec.Category)
	}
	if rec.Concept != "Comercio no identificado" {
		t.Errorf("Concept = %q, want the unidentified sentinel", rec.Concept)
	}
	if len(rec.Items) != 0 {
		t.Errorf("Items = %v, want none", rec.Items)
	}
}
