package layout

// headerStage 绘制页眉色带、logo、联系信息与登记号，锚定页面顶部，忽略传入游标。
func headerStage(in *stageInput, _ float64) ([]Primitive, float64) {
	s := newSheet(in)
	g, m := in.geo, in.style.Metrics
	band := g.Height * m.BandRatio
	bg := in.style.Element("header-band").Color

	s.fill("header-band", 0, 0, g.Width, band)

	if !s.image("header-logo", in.doc.Header.LogoPath, g.Margin.Left, 0, &bg) {
		s.text("header-logo-placeholder", in.label("logo-placeholder"), g.Margin.Left, 0)
	}

	cx := g.Width - g.Margin.Right - m.ContactInset
	// 分隔线的 Y 为下边缘，高度为半个色带加 Height。
	div := in.style.Element("header-divider")
	divH := band/2 + div.Height
	s.fill("header-divider", cx+div.X, div.Y-divH, div.Width, divH)

	step := g.LineHeight + m.ContactGap
	first := in.style.Element("header-contact").Y
	baseline := func(row int) float64 { return first + float64(row)*step }
	for i, id := range []string{"header-company", "header-address1", "header-address2", "header-phone", "header-email"} {
		switch id {
		case "header-phone":
			s.image("header-icon", in.icons.HeaderPhone, cx, baseline(i), &bg)
		case "header-email":
			s.image("header-icon", in.icons.HeaderEmail, cx, baseline(i), &bg)
		}
		s.text("header-contact", in.label(id), cx, float64(i)*step)
	}

	row1 := baseline(5)
	row2 := baseline(6) + m.HeaderLegalShift
	s.text("header-legal", in.label("header-rc"), cx, row1)
	s.text("header-legal", in.label("header-nis"), cx+m.LegalColumn, row1)
	s.text("header-legal", in.label("header-nif"), cx, row2)
	s.text("header-legal", in.label("header-article"), cx+m.LegalColumn, row2)

	return s.out, band + m.HeaderGap
}
