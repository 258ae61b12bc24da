// Package webtasks implements the scripted browser flows: forum sign-up,
// wiki page creation, admin login and shopping search. Each flow is a linear
// sequence of browser tool invocations parameterised by a YAML task profile.
package webtasks

import (
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Profile holds the parameters of all web task flows. Flows read only their
// own section; unused sections may be left empty.
type Profile struct {
	Signup   SignupParams   `mapstructure:"signup"`
	Wiki     WikiParams     `mapstructure:"wiki"`
	Admin    AdminParams    `mapstructure:"admin"`
	Shopping ShoppingParams `mapstructure:"shopping"`
}

// SignupParams parameterises the forum sign-up flow.
type SignupParams struct {
	URL       string            `mapstructure:"url"`
	Username  string            `mapstructure:"username"`
	Email     string            `mapstructure:"email"`
	Password  string            `mapstructure:"password"`
	Selectors map[string]string `mapstructure:"selectors"`
}

// WikiParams parameterises the wiki page creation flow.
type WikiParams struct {
	URL       string            `mapstructure:"url"`
	Title     string            `mapstructure:"title"`
	Content   string            `mapstructure:"content"`
	Selectors map[string]string `mapstructure:"selectors"`
}

// AdminParams parameterises the admin login flow.
type AdminParams struct {
	URL       string            `mapstructure:"url"`
	Username  string            `mapstructure:"username"`
	Password  string            `mapstructure:"password"`
	Selectors map[string]string `mapstructure:"selectors"`
}

// ShoppingParams parameterises the shopping search flow.
type ShoppingParams struct {
	URL       string            `mapstructure:"url"`
	Query     string            `mapstructure:"query"`
	Selectors map[string]string `mapstructure:"selectors"`
}

// defaultSelectors are the form selectors used when a profile does not
// override them. They match the reference deployments the flows were written
// against.
var defaultSelectors = map[string]map[string]string{
	"signup": {
		"username": "#username",
		"email":    "#email",
		"password": "#password",
		"confirm":  "#password_confirmation",
		"submit":   "button[type='submit']",
	},
	"wiki": {
		"title":   "#wiki_title",
		"content": "#wiki_content",
		"submit":  "button[type='submit']",
	},
	"admin": {
		"username": "#login",
		"password": "#password",
		"submit":   "button[type='submit']",
	},
	"shopping": {
		"search": "input[name='q']",
		"submit": "button[type='submit']",
	},
}

// LoadProfile reads a YAML task profile and decodes it with defaults applied.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read profile %s", path)
	}
	return ParseProfile(data)
}

// ParseProfile decodes a YAML task profile from bytes.
func ParseProfile(data []byte) (*Profile, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "failed to parse profile YAML")
	}

	var profile Profile
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &profile,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to build profile decoder")
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, errors.Wrap(err, "failed to decode profile")
	}

	profile.Signup.Selectors = mergeSelectors("signup", profile.Signup.Selectors)
	profile.Wiki.Selectors = mergeSelectors("wiki", profile.Wiki.Selectors)
	profile.Admin.Selectors = mergeSelectors("admin", profile.Admin.Selectors)
	profile.Shopping.Selectors = mergeSelectors("shopping", profile.Shopping.Selectors)

	return &profile, nil
}

func mergeSelectors(task string, overrides map[string]string) map[string]string {
	merged := make(map[string]string, len(defaultSelectors[task]))
	for k, v := range defaultSelectors[task] {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}
