package binding

import "testing"

type sampleDoc struct {
	Header struct {
		CompanyName string `json:"companyName"`
		ContactInfo struct {
			RC string `json:"rc"`
		} `json:"contactInfo"`
	} `json:"header"`
	Items []struct {
		Colors []string `json:"colors"`
		Qty    int      `json:"qty"`
	} `json:"items"`
	Rate float64 `json:"rate"`
}

func TestInterpolateDocumentData(t *testing.T) {
	var doc sampleDoc
	doc.Header.CompanyName = "Acme"
	doc.Header.ContactInfo.RC = "16/00-123"
	doc.Items = append(doc.Items, struct {
		Colors []string `json:"colors"`
		Qty    int      `json:"qty"`
	}{Colors: []string{"Rouge", "Bleu"}, Qty: 2})
	doc.Rate = 0.0066

	data, err := Data(doc)
	if err != nil {
		t.Fatalf("Data 失败: %v", err)
	}

	cases := map[string]string{
		"RC    ${header.contactInfo.rc}":  "RC    16/00-123",
		"${header.companyName}!":          "Acme!",
		"${items[0].colors[1]} x${items[0].qty}": "Bleu x2",
		"taux ${rate}":                    "taux 0.0066",
		"${ header.companyName }":         "Acme",
		"${header.missing}":               "${header.missing}",
		"${items[3].qty}":                 "${items[3].qty}",
		"no placeholders":                 "no placeholders",
	}
	for in, want := range cases {
		if got := Interpolate(in, data); got != want {
			t.Fatalf("Interpolate(%q) = %q，期望 %q", in, got, want)
		}
	}
}

func TestInterpolateNilData(t *testing.T) {
	if got := Interpolate("${a.b}", nil); got != "${a.b}" {
		t.Fatalf("nil 数据应原样返回，实际 %q", got)
	}
}

func TestInterpolatePlainMaps(t *testing.T) {
	data := map[string]any{
		"labels": map[string]string{"due": "A PAYER"},
		"list":   []string{"a", "b"},
		"empty":  nil,
	}
	if got := Interpolate("${labels.due}/${list[1]}/${empty}", data); got != "A PAYER/b/" {
		t.Fatalf("unexpected: %q", got)
	}
}
