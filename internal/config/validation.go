package config

import (
	"fmt"
	"net/url"

	"git.home.luguber.info/inful/doccatalog/internal/foundation/errors"
)

// Validate reports the first structural problem in the configuration.
func (c *Config) Validate() error {
	if len(c.Content.Sources) == 0 {
		return errors.ValidationError("at least one content source must be configured").Build()
	}
	for i, src := range c.Content.Sources {
		if src.URL == "" {
			return errors.ValidationError(fmt.Sprintf("content source %d has no url", i)).
				WithContext("index", i).
				Build()
		}
		if err := validateAuth(src.Auth); err != nil {
			return errors.ValidationError(fmt.Sprintf("content source %s: %v", src.URL, err)).
				WithContext("url", src.URL).
				Build()
		}
	}
	if c.Runtime.Concurrency < 0 {
		return errors.ValidationError("runtime.concurrency cannot be negative").
			WithContext("concurrency", c.Runtime.Concurrency).
			Build()
	}
	if _, _, err := c.Runtime.Retry.Durations(); err != nil {
		return errors.ValidationError("invalid runtime.retry delay").WithCause(err).Build()
	}
	if n := c.Runtime.Retry.MaxRetries; n != nil && *n < 0 {
		return errors.ValidationError("runtime.retry.max_retries cannot be negative").Build()
	}
	if _, err := ParseHTMLExtensionStyle(string(c.URLs.HTMLExtensionStyle)); err != nil {
		return errors.ValidationError("invalid urls.html_extension_style").WithCause(err).Build()
	}
	if c.Site.URL != "" {
		u, err := url.Parse(c.Site.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errors.ValidationError("site.url must be an absolute URL").
				WithContext("url", c.Site.URL).
				Build()
		}
	}
	return nil
}

func validateAuth(a *AuthConfig) error {
	if a == nil {
		return nil
	}
	t, err := authTypeNormalizer.Parse(string(a.Type))
	if err != nil {
		return err
	}
	switch t {
	case AuthTypeToken:
		if a.Token == "" {
			return fmt.Errorf("token auth requires a token")
		}
	case AuthTypeBasic:
		if a.Username == "" || a.Password == "" {
			return fmt.Errorf("basic auth requires username and password")
		}
	case AuthTypeSSH:
		// key_path is optional; the SSH agent is used without it
	}
	return nil
}
