package reservation

import (
	"testing"

	"tripdesk/models"
)

func singleSkuProduct(sku models.Sku) *models.Product {
	return &models.Product{
		ID:    "P1",
		Items: []models.Item{{ItemID: "I1", Skus: []models.Sku{sku}}},
	}
}

func TestBuildLineItemsExplicitTotalDerivesUnit(t *testing.T) {
	doc := singleSkuProduct(models.Sku{SkuID: "A"})
	lines, total, err := BuildLineItems(doc, QuoteInput{
		Skus: []models.SkuSelection{{SkuID: "A", Qty: 2, TotalPrice: 40000}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Qty != 2 || lines[0].Price != 20000 {
		t.Fatalf("expected qty 2 unit 20000, got %+v", lines[0])
	}
	if total != 40000 {
		t.Fatalf("expected total 40000, got %v", total)
	}
}

func TestBuildLineItemsExplicitKeepsGivenUnit(t *testing.T) {
	doc := singleSkuProduct(models.Sku{SkuID: "A"})
	lines, total, err := BuildLineItems(doc, QuoteInput{
		Skus: []models.SkuSelection{{SkuID: "A", Qty: "3", Price: "12,000"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lines[0].Qty != 3 || lines[0].Price != 12000 {
		t.Fatalf("coercion failed: %+v", lines[0])
	}
	if total != 36000 {
		t.Fatalf("expected total 36000, got %v", total)
	}
}

func TestBuildLineItemsExplicitCallerTotalWins(t *testing.T) {
	doc := singleSkuProduct(models.Sku{SkuID: "A"})
	_, total, err := BuildLineItems(doc, QuoteInput{
		Skus:       []models.SkuSelection{{SkuID: "A", Qty: 1, Price: 10000}},
		TotalPrice: "9,500",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 9500 {
		t.Fatalf("caller total must be authoritative, got %v", total)
	}
}

func TestBuildLineItemsSingleSkuAdults(t *testing.T) {
	doc := singleSkuProduct(models.Sku{SkuID: "S1", B2CPrice: 15000.0})
	lines, total, err := BuildLineItems(doc, QuoteInput{Adults: 2, Date: "2025-10-18"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].SkuID != "S1" || lines[0].Qty != 2 || lines[0].Price != 15000 {
		t.Fatalf("expected {S1 2 15000}, got %+v", lines[0])
	}
	if total != 30000 {
		t.Fatalf("expected total 30000, got %v", total)
	}
}

func TestBuildLineItemsAdultChildClassification(t *testing.T) {
	doc := &models.Product{
		Items: []models.Item{{
			Skus: []models.Sku{
				{SkuID: "AD", Spec: "성인", B2CPrice: 20000.0},
				{SkuID: "CH", Spec: "소아", B2CPrice: 12000.0},
			},
		}},
	}
	lines, total, err := BuildLineItems(doc, QuoteInput{Adults: 2, Children: 1, Date: "2025-10-18"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected adult + child lines, got %+v", lines)
	}

	qtySum := 0
	for _, ln := range lines {
		qtySum += ln.Qty
		switch ln.SkuID {
		case "AD":
			if ln.Qty != 2 || ln.Price != 20000 {
				t.Fatalf("adult line wrong: %+v", ln)
			}
		case "CH":
			if ln.Qty != 1 || ln.Price != 12000 {
				t.Fatalf("child line wrong: %+v", ln)
			}
		default:
			t.Fatalf("unexpected sku %s", ln.SkuID)
		}
	}
	if qtySum != 3 {
		t.Fatalf("line quantities must cover the whole party, got %d", qtySum)
	}
	if total != 52000 {
		t.Fatalf("expected total 52000, got %v", total)
	}
}

func TestBuildLineItemsEnglishChildKeyword(t *testing.T) {
	doc := &models.Product{
		Items: []models.Item{{
			Skus: []models.Sku{
				{SkuID: "AD", Title: "Adult ticket", B2CPrice: 30000.0},
				{SkuID: "CH", Title: "Kid ticket", B2CPrice: 18000.0},
			},
		}},
	}
	lines, _, err := BuildLineItems(doc, QuoteInput{Adults: 1, Children: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, ln := range lines {
		if ln.SkuID == "CH" && ln.Qty != 2 {
			t.Fatalf("child line wrong: %+v", ln)
		}
	}
}

func TestBuildLineItemsUnmatchedChildrenFoldOntoSingleSku(t *testing.T) {
	doc := singleSkuProduct(models.Sku{SkuID: "ONLY", B2CPrice: 10000.0})
	lines, total, err := BuildLineItems(doc, QuoteInput{Adults: 1, Children: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 1 || lines[0].Qty != 3 {
		t.Fatalf("combined quantity must land on the lone SKU, got %+v", lines)
	}
	if total != 30000 {
		t.Fatalf("expected total 30000, got %v", total)
	}
}

func TestBuildLineItemsClassificationFailureFallsBackToFirstSku(t *testing.T) {
	doc := &models.Product{
		Items: []models.Item{{
			Skus: []models.Sku{
				{SkuID: "X1", Title: "option one", B2CPrice: 5000.0},
				{SkuID: "X2", Title: "option two", B2CPrice: 7000.0},
			},
		}},
	}
	lines, _, err := BuildLineItems(doc, QuoteInput{Adults: 2, Children: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 1 || lines[0].SkuID != "X1" || lines[0].Qty != 3 {
		t.Fatalf("expected first-SKU fallback with combined qty, got %+v", lines)
	}
}

func TestBuildLineItemsCalendarPriceBeatsSkuScalar(t *testing.T) {
	doc := singleSkuProduct(models.Sku{
		SkuID:    "S1",
		B2CPrice: 30000.0,
		CalendarDetail: map[string]interface{}{
			"2025-10-18": map[string]interface{}{"b2c_price": 22000.0},
		},
	})
	lines, _, err := BuildLineItems(doc, QuoteInput{Adults: 1, Date: "2025-10-18"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lines[0].Price != 22000 {
		t.Fatalf("calendar price must win over the scalar, got %v", lines[0].Price)
	}
}

func TestBuildLineItemsItemMinimumFallback(t *testing.T) {
	doc := &models.Product{
		Items: []models.Item{{
			B2CMinPrice: "17,000",
			Skus:        []models.Sku{{SkuID: "S1"}},
		}},
	}
	lines, _, err := BuildLineItems(doc, QuoteInput{Adults: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lines[0].Price != 17000 {
		t.Fatalf("expected item minimum fallback, got %v", lines[0].Price)
	}
}

func TestBuildLineItemsNoSkus(t *testing.T) {
	doc := &models.Product{Items: []models.Item{{ItemID: "I1"}}}
	_, _, err := BuildLineItems(doc, QuoteInput{Adults: 1})
	if err != ErrNoSkus {
		t.Fatalf("expected ErrNoSkus, got %v", err)
	}
}

func TestBuildPayloadGeneratesPartnerOrderNo(t *testing.T) {
	doc := singleSkuProduct(models.Sku{SkuID: "S1", B2CPrice: 15000.0})
	buyer := models.BuyerContext{Name: "Kim", GuideLanguage: "ko"}

	payload, err := BuildPayload(buyer, doc, QuoteInput{Adults: 2, Date: "2025-10-18"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.PartnerOrderNo == "" {
		t.Fatal("partner_order_no must be generated when absent")
	}
	if payload.TotalPrice != 30000 {
		t.Fatalf("expected total 30000, got %v", payload.TotalPrice)
	}
	if payload.BuyerName != "Kim" || payload.GuideLanguage != "ko" {
		t.Fatalf("buyer context lost: %+v", payload)
	}

	keyed, err := BuildPayload(buyer, doc, QuoteInput{Adults: 2, Date: "2025-10-18"}, "ORD-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if keyed.PartnerOrderNo != "ORD-123" {
		t.Fatalf("caller-supplied key must be kept, got %s", keyed.PartnerOrderNo)
	}
}

func TestClassifyKeywordTable(t *testing.T) {
	table := DefaultKeywords()
	tests := []struct {
		name string
		sku  models.Sku
		want category
	}{
		{"korean adult", models.Sku{Spec: "대인 입장권"}, categoryAdult},
		{"korean child", models.Sku{Spec: "어린이 입장권"}, categoryChild},
		{"high schooler counts as child", models.Sku{Title: "고등학생"}, categoryChild},
		{"english adult", models.Sku{Name: "Adult Day Pass"}, categoryAdult},
		{"combo labels child variant", models.Sku{Spec: "성인+소아"}, categoryChild},
		{"unknown", models.Sku{Title: "패키지A"}, categoryOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Classify(&tt.sku); got != tt.want {
				t.Fatalf("Classify(%+v) = %v, want %v", tt.sku, got, tt.want)
			}
		})
	}
}
