package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"
)

type MicrosoftService interface {
	// GenerateState generates a random state string for OAuth2 flows.
	GenerateState(userAgent string) string
	// LoginURL generates the authorization URL with the base scope set.
	LoginURL(state string) string
	// ConsentURL generates the authorization URL with the calendar scope
	// added, for the one-time re-consent prompt.
	ConsentURL(state string) string
	// CalendarScope names the scope the consent prompt requests.
	CalendarScope() string
	// VerifyToken exchanges the code for an OAuth2 token.
	VerifyToken(ctx context.Context, code string) (*oauth2.Token, error)
	// VerifyUser fetches the signed-in account from Microsoft Graph.
	VerifyUser(ctx context.Context, token *oauth2.Token) (MicrosoftInformation, error)
}

type MicrosoftServiceImpl struct {
	config        *oauth2.Config
	calendarScope string
	graphBaseURL  string
}

func NewMicrosoftService(clientID, clientSecret, redirectURL, tenantID string, baseScopes []string, calendarScope, graphBaseURL string) MicrosoftService {
	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       baseScopes,
		Endpoint:     microsoft.AzureADEndpoint(tenantID),
	}
	return &MicrosoftServiceImpl{
		config:        config,
		calendarScope: calendarScope,
		graphBaseURL:  graphBaseURL,
	}
}

// MicrosoftInformation is the Graph /me payload subset the portal needs.
type MicrosoftInformation struct {
	ID                string  `json:"id"`
	Mail              *string `json:"mail"`
	UserPrincipalName string  `json:"userPrincipalName"`
	DisplayName       string  `json:"displayName"`
	GivenName         *string `json:"givenName"`
	Surname           *string `json:"surname"`
	JobTitle          *string `json:"jobTitle"`
	Department        *string `json:"department"`
	OfficeLocation    *string `json:"officeLocation"`
}

// Email prefers the mailbox address, falling back to the principal name.
func (m MicrosoftInformation) Email() string {
	if m.Mail != nil && *m.Mail != "" {
		return *m.Mail
	}
	return m.UserPrincipalName
}

// GenerateState generates a random state string for OAuth2 flows.
func (m *MicrosoftServiceImpl) GenerateState(userAgent string) string {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return ""
	}
	state := fmt.Sprintf("%s.%s", base64.URLEncoding.EncodeToString(b), userAgent)
	return base64.URLEncoding.EncodeToString([]byte(state))
}

func (m *MicrosoftServiceImpl) LoginURL(state string) string {
	return m.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (m *MicrosoftServiceImpl) ConsentURL(state string) string {
	consent := *m.config
	consent.Scopes = append(append([]string{}, m.config.Scopes...), m.calendarScope)
	return consent.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (m *MicrosoftServiceImpl) CalendarScope() string {
	return m.calendarScope
}

func (m *MicrosoftServiceImpl) VerifyToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := m.config.Exchange(ctx, code)
	if err != nil {
		return &oauth2.Token{}, err
	}
	return token, nil
}

func (m *MicrosoftServiceImpl) VerifyUser(ctx context.Context, token *oauth2.Token) (MicrosoftInformation, error) {
	var info MicrosoftInformation

	client := m.config.Client(ctx, token)

	resp, err := client.Get(m.graphBaseURL + "/me")
	if err != nil {
		return MicrosoftInformation{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return MicrosoftInformation{}, fmt.Errorf("graph /me returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return MicrosoftInformation{}, err
	}

	return info, nil
}
