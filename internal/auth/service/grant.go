package service

import (
	"net/url"
	"strings"

	"github.com/aussiebroadwan/familytree/internal/auth/domain"
)

type GrantType string

const (
	GrantClientCredentials GrantType = "client_credentials"
	GrantAuthorizationCode GrantType = "authorization_code"
	GrantPassword          GrantType = "password"
	GrantRefreshToken      GrantType = "refresh_token"
)

// Grant is a parsed token request. The set of implementations is closed:
// ClientCredentialsGrant, AuthorizationCodeGrant, PasswordGrant and
// RefreshTokenGrant.
type Grant interface {
	Type() GrantType
	grant()
}

// ClientCredentialsGrant requests a token for the authenticated client.
// A nil Scope means no scope parameter was sent.
type ClientCredentialsGrant struct {
	Scope *domain.Scopes
}

type AuthorizationCodeGrant struct {
	Code        string
	RedirectURI string
}

type PasswordGrant struct {
	Username string
	Password string
}

type RefreshTokenGrant struct {
	RefreshToken string
}

func (ClientCredentialsGrant) Type() GrantType { return GrantClientCredentials }
func (AuthorizationCodeGrant) Type() GrantType { return GrantAuthorizationCode }
func (PasswordGrant) Type() GrantType          { return GrantPassword }
func (RefreshTokenGrant) Type() GrantType      { return GrantRefreshToken }

func (ClientCredentialsGrant) grant() {}
func (AuthorizationCodeGrant) grant() {}
func (PasswordGrant) grant()          {}
func (RefreshTokenGrant) grant()      {}

// ParseGrant reads grant_type and the parameters that grant needs.
//
//	no grant_type            -> ErrNoGrantType
//	missing grant parameters -> *MissingParametersError
//	unknown grant_type       -> *UnsupportedGrantTypeError
func ParseGrant(form url.Values) (Grant, error) {
	grantType := strings.TrimSpace(form.Get("grant_type"))
	if grantType == "" {
		return nil, ErrNoGrantType
	}

	switch GrantType(grantType) {
	case GrantClientCredentials:
		g := ClientCredentialsGrant{}
		if vals, ok := form["scope"]; ok && len(vals) > 0 {
			requested := domain.ParseScopes(vals[0])
			g.Scope = &requested
		}
		return g, nil

	case GrantAuthorizationCode:
		if err := requireParams(form, GrantAuthorizationCode, "code", "redirect_uri"); err != nil {
			return nil, err
		}
		return AuthorizationCodeGrant{
			Code:        strings.TrimSpace(form.Get("code")),
			RedirectURI: strings.TrimSpace(form.Get("redirect_uri")),
		}, nil

	case GrantPassword:
		if err := requireParams(form, GrantPassword, "username", "password"); err != nil {
			return nil, err
		}
		return PasswordGrant{
			Username: strings.TrimSpace(form.Get("username")),
			Password: form.Get("password"),
		}, nil

	case GrantRefreshToken:
		if err := requireParams(form, GrantRefreshToken, "refresh_token"); err != nil {
			return nil, err
		}
		return RefreshTokenGrant{RefreshToken: form.Get("refresh_token")}, nil

	default:
		return nil, &UnsupportedGrantTypeError{GrantType: grantType}
	}
}

func requireParams(form url.Values, grantType GrantType, names ...string) error {
	var missing []string
	for _, name := range names {
		if strings.TrimSpace(form.Get(name)) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingParametersError{GrantType: grantType, Params: missing}
	}
	return nil
}
