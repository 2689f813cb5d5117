package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/ByLCY/proforma/config"
	"github.com/ByLCY/proforma/dsl"
	ierr "github.com/ByLCY/proforma/errors"
	"github.com/ByLCY/proforma/invoice"
	"github.com/ByLCY/proforma/layout"
	"github.com/ByLCY/proforma/logger"
	"github.com/ByLCY/proforma/renderer"
	canvasrenderer "github.com/ByLCY/proforma/renderer/canvas"
)

// cliOptions 为命令行参数；空值表示使用配置文件中的取值。
type cliOptions struct {
	ConfigPath   string
	OrderPath    string
	DocPath      string
	OutputPath   string
	Format       string
	TemplatePath string
	DebugPath    string
}

func main() {
	var opts cliOptions
	flag.StringVar(&opts.ConfigPath, "config", "", "配置文件路径（默认在 . ./config /etc/proforma 中查找 config.yaml）")
	flag.StringVar(&opts.OrderPath, "in", "", "订单 JSON 路径，按价目表计价")
	flag.StringVar(&opts.DocPath, "doc", "", "已计价的发票文档 JSON 路径（与 -in 二选一）")
	flag.StringVar(&opts.OutputPath, "out", "", "输出路径（默认取 output.path）")
	flag.StringVar(&opts.Format, "format", "", "输出格式 pdf|png（默认取 output.format）")
	flag.StringVar(&opts.TemplatePath, "template", "", "模板覆盖文件（默认取 assets.template）")
	flag.StringVar(&opts.DebugPath, "debug", "", "布局调试 JSON 输出路径")
	flag.Parse()

	out, err := run(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "生成失败：%s\n", ierr.HintOf(err))
		os.Exit(ierr.ExitCode(err))
	}
	fmt.Printf("已生成：%s\n", out)
}

// run 串联配置、计价、布局与渲染，返回输出文件路径。
func run(opts cliOptions) (string, error) {
	cfg, err := config.NewConfig(opts.ConfigPath)
	if err != nil {
		return "", err
	}
	log, err := logger.NewLogger(cfg.Logging.Level)
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("无法初始化日志").
			Mark(ierr.ErrSystem)
	}
	defer log.Sync()

	doc, err := loadDocument(opts, cfg)
	if err != nil {
		return "", err
	}

	geo, err := cfg.Geometry()
	if err != nil {
		return "", err
	}
	style, geo, meta, err := loadTemplate(firstNonEmpty(opts.TemplatePath, cfg.Assets.Template), geo)
	if err != nil {
		return "", err
	}

	images := layout.NewCachedLoader(layout.FileImageLoader{BaseDir: cfg.Assets.BaseDir})
	r := canvasrenderer.NewRenderer(log, images)

	result, err := layout.Layout(doc, geo, layout.Options{
		Style:    style,
		Images:   images,
		Icons:    cfg.Icons(),
		Measurer: r,
		Meta:     meta,
		Logger:   log,
	})
	if err != nil {
		return "", err
	}

	if opts.DebugPath != "" {
		if err := layout.WriteDebugJSON(result, opts.DebugPath); err != nil {
			return "", ierr.WithError(err).
				WithHintf("无法写入调试文件 %s", opts.DebugPath).
				Mark(ierr.ErrOutput)
		}
	}

	var data []byte
	switch format := firstNonEmpty(opts.Format, cfg.Output.Format); format {
	case "pdf":
		data, err = r.Render(result)
	case "png":
		data, err = r.RenderPNG(result, cfg.Output.PreviewDPMM)
	default:
		return "", ierr.NewErrorf("unknown output format %q", format).
			WithHintf("不支持的输出格式：%s（可选 pdf、png）", format).
			Mark(ierr.ErrValidation)
	}
	if err != nil {
		return "", err
	}

	out := firstNonEmpty(opts.OutputPath, cfg.Output.Path)
	if err := renderer.WriteFile(out, data); err != nil {
		return "", err
	}
	log.Infow("document generated", "path", out, "bytes", len(data), "warnings", len(result.Warnings))
	return out, nil
}

// loadDocument 读取已计价的文档，或读取订单并按配置中的价目表计价。
func loadDocument(opts cliOptions, cfg *config.Configuration) (*invoice.Document, error) {
	switch {
	case opts.DocPath != "":
		var doc invoice.Document
		if err := readJSON(opts.DocPath, &doc); err != nil {
			return nil, err
		}
		if err := doc.Validate(); err != nil {
			return nil, err
		}
		return &doc, nil
	case opts.OrderPath != "":
		var req invoice.Request
		if err := readJSON(opts.OrderPath, &req); err != nil {
			return nil, err
		}
		catalog, err := cfg.PriceCatalog()
		if err != nil {
			return nil, err
		}
		return invoice.NewBuilder(catalog, cfg.Settings()).Build(req)
	default:
		return nil, ierr.NewError("no input").
			WithHint("需要通过 -in 指定订单或通过 -doc 指定发票文档").
			Mark(ierr.ErrValidation)
	}
}

// loadTemplate 读取并应用模板覆盖；path 为空时返回默认样式。
func loadTemplate(path string, geo layout.PageGeometry) (*layout.Style, layout.PageGeometry, layout.DocumentMeta, error) {
	if path == "" {
		return layout.DefaultStyle(), geo, layout.DocumentMeta{}, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, geo, layout.DocumentMeta{}, readError(err, path)
	}
	defer file.Close()

	tmpl, err := dsl.Parse(file)
	if err != nil {
		return nil, geo, layout.DocumentMeta{}, ierr.WithError(err).
			WithHintf("解析模板 %s 失败：%v", path, err).
			Mark(ierr.ErrValidation)
	}
	return layout.ApplyTemplate(layout.DefaultStyle(), geo, tmpl)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return readError(err, path)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return ierr.WithError(err).
			WithHintf("解析 JSON %s 失败：%v", path, err).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func readError(err error, path string) error {
	ref := ierr.ErrResource
	if os.IsNotExist(err) {
		ref = ierr.ErrNotFound
	}
	return ierr.WithError(err).
		WithHintf("无法读取 %s", path).
		Mark(ref)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
