package layout

// footerStage 绘制致谢、条款与签名。位置锚定下边距，与表格长度无关。
func footerStage(in *stageInput, cursor float64) ([]Primitive, float64) {
	s := newSheet(in)
	g, m := in.geo, in.style.Metrics
	x, base := g.Margin.Left, g.Height-g.Margin.Bottom

	s.text("footer-thanks", in.label("thanks"), x, base)
	s.text("footer-heading", in.label("footer-heading"), x, base)
	for i, id := range []string{"footer-note1", "footer-note2"} {
		s.text("footer-note", in.label(id), x, base+float64(i+1)*g.LineHeight)
	}

	sx := g.Width - g.Margin.Right - m.SignatureInset
	sy := base - m.SignatureRise
	s.text("signature-name", in.label("signature-name"), sx, sy)
	s.rect("signature-rule", sx, sy, 0)
	s.text("signature-fullname", in.label("signature-fullname"), sx, sy)
	s.text("signature-title", in.label("signature-title"), sx, sy)

	return s.out, cursor + m.FooterGap
}
