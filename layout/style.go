package layout

import (
	"maps"
	"slices"
)

// Placement 描述一个模板元素相对其锚点的位置与外观。
// 文本使用 X/Y（基线）、Font、Size（pt）、Color、Align；
// 矩形与图片使用 X/Y（上边缘）、Width、Height，Width 为 0 表示铺满锚点所在区域。
type Placement struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Font   string  `json:"font,omitempty"`
	Size   float64 `json:"size,omitempty"`
	Color  Color   `json:"color"`
	Align  string  `json:"align,omitempty"`
}

// Metrics 为各阶段推进游标所用的固定量（mm）。
type Metrics struct {
	BandRatio        float64   `json:"bandRatio"`
	HeaderGap        float64   `json:"headerGap"`
	ContactInset     float64   `json:"contactInset"`
	ContactGap       float64   `json:"contactGap"`
	LegalColumn      float64   `json:"legalColumn"`
	HeaderLegalShift float64   `json:"headerLegalShift"`
	BillToNameGap    float64   `json:"billToNameGap"`
	BillToAddressGap float64   `json:"billToAddressGap"`
	BillToContactGap float64   `json:"billToContactGap"`
	LegalRowGap      float64   `json:"legalRowGap"`
	MetaInset        float64   `json:"metaInset"`
	MetaColumns      []float64 `json:"metaColumns"`
	MetaDividers     []float64 `json:"metaDividers"`
	BillToGap        float64   `json:"billToGap"`
	ColumnWidths     []float64 `json:"columnWidths"`
	HeaderHeight     float64   `json:"headerHeight"`
	MinRowHeight     float64   `json:"minRowHeight"`
	RowPadding       float64   `json:"rowPadding"`
	BulletIndent     float64   `json:"bulletIndent"`
	TrailingGap      float64   `json:"trailingGap"`
	TotalsOffset     float64   `json:"totalsOffset"`
	TotalsInset      float64   `json:"totalsInset"`
	TotalsRowGap     float64   `json:"totalsRowGap"`
	SignatureInset   float64   `json:"signatureInset"`
	SignatureRise    float64   `json:"signatureRise"`
	FooterGap        float64   `json:"footerGap"`
	FooterReserve    float64   `json:"footerReserve"`
	TitleSpacing     bool      `json:"titleSpacing"`
}

// Style 是数据驱动的模板：元素位置、标签文本与度量。
// Fonts 为模板中声明的字体别名（逻辑名 → 内置字体名）。
type Style struct {
	Elements map[string]Placement `json:"elements"`
	Labels   map[string]string    `json:"labels"`
	Fonts    map[string]string    `json:"fonts,omitempty"`
	Metrics  Metrics              `json:"metrics"`
}

var (
	colorBand   = Color{R: 0x31, G: 0x3B, B: 0x4B}
	colorLight  = Color{R: 0xD5, G: 0xD5, B: 0xD5}
	colorAccent = Color{R: 0xC9, G: 0xB7, B: 0xA1}
	colorText   = Color{R: 0x66, G: 0x66, B: 0x66}
	colorMuted  = Color{R: 0x5E, G: 0x5E, B: 0x5E}
	colorCell   = Color{R: 0x33, G: 0x33, B: 0x33}
	colorRule   = Color{R: 0x71, G: 0x70, B: 0x70}
	colorSplit  = Color{R: 0x94, G: 0x93, B: 0x93}
	colorWhite  = Color{R: 0xFF, G: 0xFF, B: 0xFF}
)

// DefaultStyle 返回参考模板。每次调用都返回新的副本。
//
// 锚点约定：
//   - header-*：页面左上角；header-logo* 相对左边距；divider/contact/icon/legal 相对联系信息列；
//   - billto-*：(左边距, 游标)；meta-*：(右边距 - MetaInset, 游标)；
//   - table-*：(左边距, 表格顶部)；单元格与项目符号相对行顶，行分隔线相对行底；
//   - header-divider 的 Y 为下边缘，高度为半个色带加 Height；
//   - payment-*：(左边距, 合计起点)；totals-*：(页宽 - TotalsInset, 合计起点)；
//   - footer-*：(左边距, 页高 - 下边距)；signature-*：签名锚点。
func DefaultStyle() *Style {
	return &Style{
		Elements: map[string]Placement{
			"header-band":             {Color: colorBand},
			"header-logo":             {X: 20, Y: 10, Width: 27, Height: 27},
			"header-logo-placeholder": {X: 20, Y: 31.5, Font: "Helvetica-Bold", Size: 20, Color: colorWhite},
			"header-divider":          {X: -6, Y: 45, Width: 0.2, Height: 6, Color: colorLight},
			"header-contact":          {Y: 15, Font: "Charter-Bold", Size: 11, Color: colorLight},
			"header-icon":             {Y: -3, Width: 3.5, Height: 3.5},
			"header-legal":            {Font: "Charter-Bold", Size: 8, Color: colorLight},

			"billto-label":  {Y: 15, Font: "Charter", Size: 12, Color: colorAccent},
			"billto-name":   {X: 33, Y: 15, Font: "Charter-Bold", Size: 12, Color: colorText},
			"billto-detail": {Font: "Charter", Size: 10, Color: colorText},
			"billto-icon":   {Y: -3, Width: 3.5, Height: 3.5},
			"billto-legal":  {Font: "Charter", Size: 7, Color: colorMuted},
			"meta-title":    {Y: 20, Font: "Times-Roman", Size: 18, Color: colorBand},
			"meta-rule":     {Y: 22.8, Width: 70, Height: 0.2, Color: colorBand},
			"meta-label":    {Y: 30, Font: "Times-Roman", Size: 8, Color: colorText},
			"meta-value":    {Y: 33.5, Font: "Times-Roman-Bold", Size: 8, Color: colorText},
			"meta-divider":  {Y: 26, Width: 0.25, Height: 7, Color: colorSplit},

			"table-rule":      {Y: -0.3, Height: 0.3, Color: colorMuted},
			"table-header":    {Y: 5, Font: "Georgia-Bold", Size: 10, Color: colorMuted},
			"table-cell":      {Y: 5.6, Font: "Charter", Size: 10, Color: colorCell},
			"table-bullet":    {Y: 5.6, Font: "Charter", Size: 10, Color: colorCell},
			"table-color":     {Y: 5.6, Font: "Charter", Size: 10, Color: colorCell},
			"table-row-rule":  {Y: -0.01, Height: 0.01, Color: colorRule},
			"table-last-rule": {Y: 9.5, Height: 0.5, Color: colorRule},

			"payment-heading":  {Y: 15, Font: "Charter", Size: 10, Color: colorAccent},
			"payment-rule":     {Y: 17.8, Width: 50, Height: 0.2, Color: colorCell},
			"payment-text":     {Y: 23, Font: "Charter-Bold", Size: 11, Color: colorText},
			"totals-label":     {Y: -10, Font: "Georgia-Bold", Size: 10, Color: colorRule},
			"totals-value":     {X: 56, Y: -10, Font: "Charter", Size: 10, Color: colorRule, Align: "right"},
			"totals-highlight": {X: -2, Y: 19, Width: 60, Height: 10, Color: colorAccent},
			"totals-due-label": {Y: 24, Font: "Georgia-Bold", Size: 10, Color: colorWhite},
			"totals-due-value": {X: 56, Y: 24, Font: "Charter", Size: 10, Color: colorWhite, Align: "right"},

			"footer-thanks":      {Y: -20, Font: "Charter-Bold", Size: 13, Color: colorAccent},
			"footer-heading":     {Y: -12, Font: "Charter-Bold", Size: 10, Color: colorText},
			"footer-note":        {Y: -12, Font: "Charter", Size: 10, Color: colorText},
			"signature-name":     {Font: "Kunstler", Size: 18, Color: colorCell, Align: "center"},
			"signature-rule":     {X: -30, Y: 3.9, Width: 60, Height: 0.1, Color: colorCell},
			"signature-fullname": {Y: 13, Font: "Times-Roman-Bold", Size: 14, Color: colorCell, Align: "center"},
			"signature-title":    {Y: 19, Font: "Times-Roman", Size: 12, Color: colorCell, Align: "center"},
		},
		Labels: map[string]string{
			"logo-placeholder": "[LOGO]",
			"header-company":   "${header.companyName}",
			"header-address1":  "${header.contactInfo.addressLine1}",
			"header-address2":  "${header.contactInfo.addressLine2}",
			"header-phone":     "      ${header.contactInfo.phone}",
			"header-email":     "      ${header.contactInfo.email}",
			"header-rc":        "RC    ${header.contactInfo.rc}",
			"header-nis":       "Nis       ${header.contactInfo.nis}",
			"header-nif":       "Nif    ${header.contactInfo.nif}",
			"header-article":   "Art  ${header.contactInfo.article}",

			"billto-label":    "DESTINATAIRE:",
			"billto-name":     "${billTo.name}",
			"billto-address1": "${billTo.addressLine1}",
			"billto-address2": "${billTo.addressLine2}",
			"billto-phone":    "      ${billTo.phone}",
			"billto-email":    "      ${billTo.email}",
			"billto-rc":       "${billTo.rc}",
			"billto-nis":      "${billTo.nis}",
			"billto-nif":      "${billTo.nif}",
			"billto-article":  "${billTo.article}",

			"meta-title":        "${invoiceDetails.invoiceTitle}",
			"meta-ref":          "Ref",
			"meta-issued":       "Date d’édition:",
			"meta-valid":        "Validité:",
			"meta-ref-value":    "${invoiceDetails.accountNo}",
			"meta-issued-value": "${invoiceDetails.invoiceDate}",
			"meta-valid-value":  "${invoiceDetails.issueDate}",

			"col-name":   "NOM MODELE",
			"col-colors": "COULEURS",
			"col-unit":   "PRIX UNITAIRE",
			"col-qty":    "QUANTITE",
			"col-total":  "TOTAL HT",
			"bullet":     "•",

			"payment-heading": "MOYEN DE PAIEMENT",
			"totals-subtotal": "Sous Total HT",
			"totals-tax":      "TVA",
			"totals-ttc":      "Total TTC",
			"totals-deposit":  "Acompte",
			"totals-due":      "A PAYER",

			"thanks":             "M e r c i  P o u r  V o t r e  C o n f i a n c e",
			"footer-heading":     "${thankYouMessage.heading}",
			"footer-note1":       "${thankYouMessage.notesLine1}",
			"footer-note2":       "${thankYouMessage.notesLine2}",
			"signature-name":     "${signature.name}",
			"signature-fullname": "${signature.fullName}",
			"signature-title":    "${signature.title}",
		},
		Fonts: map[string]string{},
		Metrics: Metrics{
			BandRatio:        0.19,
			HeaderGap:        10,
			ContactInset:     64,
			ContactGap:       0.5,
			LegalColumn:      32,
			HeaderLegalShift: -1,
			BillToNameGap:    4.5,
			BillToAddressGap: 0.5,
			BillToContactGap: -0.2,
			LegalRowGap:      3,
			MetaInset:        70,
			MetaColumns:      []float64{25, 30, 25},
			MetaDividers:     []float64{18, 49},
			BillToGap:        18,
			ColumnWidths:     []float64{35, 40, 30, 30, 33},
			HeaderHeight:     8,
			MinRowHeight:     8,
			RowPadding:       7,
			BulletIndent:     4,
			TrailingGap:      10,
			TotalsOffset:     22,
			TotalsInset:      78,
			TotalsRowGap:     8,
			SignatureInset:   30,
			SignatureRise:    21,
			FooterGap:        10,
			FooterReserve:    25,
			TitleSpacing:     true,
		},
	}
}

// Clone 深拷贝，覆盖模板时不会影响原对象。
func (s *Style) Clone() *Style {
	if s == nil {
		return DefaultStyle()
	}
	out := &Style{
		Elements: maps.Clone(s.Elements),
		Labels:   maps.Clone(s.Labels),
		Fonts:    maps.Clone(s.Fonts),
		Metrics:  s.Metrics,
	}
	if out.Fonts == nil {
		out.Fonts = map[string]string{}
	}
	out.Metrics.MetaColumns = slices.Clone(s.Metrics.MetaColumns)
	out.Metrics.MetaDividers = slices.Clone(s.Metrics.MetaDividers)
	out.Metrics.ColumnWidths = slices.Clone(s.Metrics.ColumnWidths)
	return out
}

// Element 返回元素位置；未定义的元素返回零值。
func (s *Style) Element(id string) Placement {
	return s.Elements[id]
}

// Label 返回标签模板；未定义时返回空串。
func (s *Style) Label(id string) string {
	return s.Labels[id]
}

// ColumnOffset 为第 n 列右边缘到表格左侧的距离（前 n 列宽度之和）。
func (m Metrics) ColumnOffset(n int) float64 {
	sum := 0.0
	for i := 0; i < n && i < len(m.ColumnWidths); i++ {
		sum += m.ColumnWidths[i]
	}
	return sum
}

// RowHeight 为含 colors 个颜色行的表格行高。
func (m Metrics) RowHeight(colors int, lineHeight float64) float64 {
	return max(m.MinRowHeight, float64(colors)*lineHeight+m.RowPadding)
}
