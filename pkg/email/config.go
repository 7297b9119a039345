package email

// Config holds email service configuration.
// Postmark tokens are optional: without them test sends are written to DevDir.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"preview@mailpreview.dev"`
	SupportEmail         string `env:"SUPPORT_EMAIL" envDefault:"preview@mailpreview.dev"`
	DevDir               string `env:"DEV_MAIL_DIR" envDefault:"./tmp/emails"`
	Tag                  string `env:"EMAIL_TAG" envDefault:"mailpreview"`
}

// UsePostmark reports whether both Postmark tokens are configured.
func (c Config) UsePostmark() bool {
	return c.PostmarkServerToken != "" && c.PostmarkAccountToken != ""
}

// NewSender returns a Postmark sender when tokens are configured and a DevSender otherwise.
func NewSender(cfg Config, opts ...PostmarkOption) (EmailSender, error) {
	if cfg.UsePostmark() {
		return NewPostmarkClient(cfg, opts...)
	}
	return NewDevSender(cfg.DevDir), nil
}
