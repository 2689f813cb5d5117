package config

import (
	"strings"

	ierr "github.com/ByLCY/proforma/errors"
	"github.com/ByLCY/proforma/invoice"
	"github.com/ByLCY/proforma/layout"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Configuration struct {
	Logging   LoggingConfig `validate:"required"`
	Page      PageConfig    `validate:"required"`
	Assets    AssetsConfig
	Output    OutputConfig  `validate:"required"`
	Company   CompanyConfig `validate:"required"`
	Invoice   InvoiceConfig `validate:"required"`
	Terms     TermsConfig
	Signature SignatureConfig
	Catalog   CatalogConfig
}

type LoggingConfig struct {
	Level string `validate:"omitempty,oneof=debug info warn error"`
}

// PageConfig margins are millimetres, line height is points.
type PageConfig struct {
	Size        string  `validate:"required,oneof=A4 A5"`
	Orientation string  `validate:"omitempty,oneof=portrait landscape"`
	Margin      float64 `validate:"gte=0"`
	LineHeight  float64 `mapstructure:"line_height" validate:"gt=0"`
}

type AssetsConfig struct {
	BaseDir  string `mapstructure:"base_dir"`
	Template string
	Icons    IconsConfig
}

type IconsConfig struct {
	HeaderPhone string `mapstructure:"header_phone"`
	HeaderEmail string `mapstructure:"header_email"`
	Phone       string
	Email       string
}

type OutputConfig struct {
	Path        string  `validate:"required"`
	Format      string  `validate:"oneof=pdf png"`
	PreviewDPMM float64 `mapstructure:"preview_dpmm" validate:"gte=0"`
}

type CompanyConfig struct {
	CompanyName  string `mapstructure:"company_name" validate:"required"`
	LogoPath     string `mapstructure:"logo_path"`
	AddressLine1 string `mapstructure:"address_line1"`
	AddressLine2 string `mapstructure:"address_line2"`
	Phone        string
	Email        string
	RC           string
	NIF          string
	NIS          string
	Article      string
}

type InvoiceConfig struct {
	Title          string   `validate:"required"`
	PaymentModes   []string `mapstructure:"payment_modes"`
	Currency       string
	CurrencySign   string  `mapstructure:"currency_sign"`
	DecimalPoint   string  `mapstructure:"decimal_point" validate:"oneof=. ,"`
	Tax            float64 `validate:"gte=0,lte=100"`
	Discount       float64 `validate:"gte=0,lte=100"`
	DeliveryCost   float64 `mapstructure:"delivery_cost" validate:"gte=0"`
	Rate           float64 `validate:"gte=0"`
	ColorSurcharge float64 `mapstructure:"color_surcharge" validate:"gte=0"`
}

type TermsConfig struct {
	Label string
	Line1 string
	Line2 string
}

type SignatureConfig struct {
	NameCursive string `mapstructure:"name_cursive"`
	FullName    string `mapstructure:"full_name"`
	Position    string
}

type CatalogConfig struct {
	Variants []CatalogVariant `validate:"dive"`
	Colors   []CatalogColor   `validate:"dive"`
}

type CatalogVariant struct {
	Model string  `validate:"required"`
	Name  string  `validate:"required"`
	Price float64 `validate:"gte=0"`
}

type CatalogColor struct {
	Name  string  `validate:"required"`
	Price float64 `validate:"gte=0"`
}

// NewConfig loads configuration from path, or from config.yaml in the usual
// search paths when path is empty, then applies PROFORMA_* environment overrides.
func NewConfig(path string) (*Configuration, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/proforma")
	}

	v.SetEnvPrefix("PROFORMA")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !ierr.As(err, &notFound) {
			return nil, ierr.WithError(err).
				WithHintf("Cannot read configuration %s", path).
				Mark(ierr.ErrValidation)
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Configuration has invalid values").
			Mark(ierr.ErrValidation)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		details := make(map[string]any)
		var validateErrs validator.ValidationErrors
		if ierr.As(err, &validateErrs) {
			for _, e := range validateErrs {
				details[e.Namespace()] = e.Error()
			}
		}
		return ierr.WithError(err).
			WithHint("Configuration validation failed").
			WithReportableDetails(details).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	def := GetDefaultConfig()
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("page.size", def.Page.Size)
	v.SetDefault("page.orientation", def.Page.Orientation)
	v.SetDefault("page.margin", def.Page.Margin)
	v.SetDefault("page.line_height", def.Page.LineHeight)
	v.SetDefault("assets.base_dir", def.Assets.BaseDir)
	v.SetDefault("assets.template", "")
	v.SetDefault("assets.icons.header_phone", def.Assets.Icons.HeaderPhone)
	v.SetDefault("assets.icons.header_email", def.Assets.Icons.HeaderEmail)
	v.SetDefault("assets.icons.phone", def.Assets.Icons.Phone)
	v.SetDefault("assets.icons.email", def.Assets.Icons.Email)
	v.SetDefault("output.path", def.Output.Path)
	v.SetDefault("output.format", def.Output.Format)
	v.SetDefault("output.preview_dpmm", def.Output.PreviewDPMM)
	v.SetDefault("company.company_name", def.Company.CompanyName)
	v.SetDefault("company.logo_path", "")
	v.SetDefault("invoice.title", def.Invoice.Title)
	v.SetDefault("invoice.payment_modes", def.Invoice.PaymentModes)
	v.SetDefault("invoice.currency", def.Invoice.Currency)
	v.SetDefault("invoice.currency_sign", def.Invoice.CurrencySign)
	v.SetDefault("invoice.decimal_point", def.Invoice.DecimalPoint)
	v.SetDefault("invoice.tax", def.Invoice.Tax)
	v.SetDefault("invoice.discount", def.Invoice.Discount)
	v.SetDefault("invoice.delivery_cost", def.Invoice.DeliveryCost)
	v.SetDefault("invoice.rate", def.Invoice.Rate)
	v.SetDefault("invoice.color_surcharge", def.Invoice.ColorSurcharge)
	v.SetDefault("terms.label", def.Terms.Label)
	v.SetDefault("terms.line1", def.Terms.Line1)
	v.SetDefault("terms.line2", def.Terms.Line2)
	v.SetDefault("signature.name_cursive", "")
	v.SetDefault("signature.full_name", "")
	v.SetDefault("signature.position", "")
}

// GetDefaultConfig returns the reference defaults. The company name is left
// empty and must come from a file or the environment.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Logging: LoggingConfig{Level: "info"},
		Page:    PageConfig{Size: "A4", Orientation: "portrait", Margin: 20, LineHeight: 12},
		Assets: AssetsConfig{
			BaseDir: ".",
			Icons: IconsConfig{
				HeaderPhone: "icons/phone1.png",
				HeaderEmail: "icons/email1.png",
				Phone:       "icons/phone.png",
				Email:       "icons/email.png",
			},
		},
		Output: OutputConfig{Path: "output/proforma.pdf", Format: "pdf", PreviewDPMM: 8},
		Invoice: InvoiceConfig{
			Title:        "Proforma",
			PaymentModes: []string{"cheque", "virement"},
			Currency:     "DA",
			CurrencySign: "DA",
			DecimalPoint: ",",
			Tax:          19,
			Discount:     10,
			Rate:         1,
		},
		Terms: TermsConfig{Label: "Termes et conditions"},
	}
}

// Settings maps the configuration onto the builder's settings.
func (c *Configuration) Settings() invoice.Settings {
	co := c.Company
	return invoice.Settings{
		Company: invoice.Header{
			CompanyName: co.CompanyName,
			LogoPath:    co.LogoPath,
			ContactInfo: invoice.ContactInfo{
				AddressLine1: co.AddressLine1,
				AddressLine2: co.AddressLine2,
				Phone:        co.Phone,
				Email:        co.Email,
				RC:           co.RC,
				NIF:          co.NIF,
				NIS:          co.NIS,
				Article:      co.Article,
			},
		},
		Title:           c.Invoice.Title,
		PaymentModes:    c.Invoice.PaymentModes,
		CurrencySign:    c.Invoice.CurrencySign,
		DecimalPoint:    c.Invoice.DecimalPoint,
		TaxPercent:      decimal.NewFromFloat(c.Invoice.Tax),
		DiscountPercent: decimal.NewFromFloat(c.Invoice.Discount),
		DeliveryCost:    decimal.NewFromFloat(c.Invoice.DeliveryCost),
		Rate:            decimal.NewFromFloat(c.Invoice.Rate),
		ColorSurcharge:  decimal.NewFromFloat(c.Invoice.ColorSurcharge),
		Terms: invoice.Terms{
			Heading:    c.Terms.Label,
			NotesLine1: c.Terms.Line1,
			NotesLine2: c.Terms.Line2,
		},
		Signature: invoice.Signature{
			Name:     c.Signature.NameCursive,
			FullName: c.Signature.FullName,
			Title:    c.Signature.Position,
		},
	}
}

// PriceCatalog builds the catalog from the configured price lists.
func (c *Configuration) PriceCatalog() (*invoice.PriceCatalog, error) {
	variants := make([]invoice.VariantPrice, 0, len(c.Catalog.Variants))
	for _, v := range c.Catalog.Variants {
		variants = append(variants, invoice.VariantPrice{Model: v.Model, Name: v.Name, Price: decimal.NewFromFloat(v.Price)})
	}
	colors := make([]invoice.ColorPrice, 0, len(c.Catalog.Colors))
	for _, col := range c.Catalog.Colors {
		colors = append(colors, invoice.ColorPrice{Name: col.Name, Price: decimal.NewFromFloat(col.Price)})
	}
	return invoice.NewPriceCatalog(variants, colors)
}

// Geometry resolves the page section into layout geometry.
func (c *Configuration) Geometry() (layout.PageGeometry, error) {
	return layout.NewGeometry(c.Page.Size, c.Page.Orientation == "landscape", c.Page.Margin, c.Page.LineHeight*layout.PtToMm)
}

// Icons returns the icon paths for the layout engine.
func (c *Configuration) Icons() layout.IconSet {
	return layout.IconSet{
		HeaderPhone: c.Assets.Icons.HeaderPhone,
		HeaderEmail: c.Assets.Icons.HeaderEmail,
		Phone:       c.Assets.Icons.Phone,
		Email:       c.Assets.Icons.Email,
	}
}
