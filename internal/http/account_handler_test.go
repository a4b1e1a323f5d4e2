package http

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fjod/agromarket/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type formFileField struct {
	field, name string
	content     []byte
}

func doMultipart(t *testing.T, handler http.Handler, target string, values map[string]string, files ...formFileField) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range values {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestSignup_JSON(t *testing.T) {
	accounts := &fakeAccounts{}
	router := newTestRouter(Handlers{Accounts: NewAccountHandler(accounts, defaultTestTimeout, discardLog)})

	rec := doJSON(t, router, http.MethodPost, "/signup", SignupRequestDTO{
		Username: "asha", Mail: "asha@example.com", Password: "pw", Type: "farmer",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, accounts.signedUp)
	assert.Equal(t, domain.RoleFarmer, accounts.signedUp.Type)
	assert.NotContains(t, rec.Body.String(), "password")

	body := decodeBody[UserResponse](t, rec)
	assert.Equal(t, "User created successfully", body.Message)
	assert.Equal(t, "asha", body.User.Username)
	assert.Empty(t, body.Token)
}

func TestSignup_MultipartWithPicture(t *testing.T) {
	accounts := &fakeAccounts{}
	router := newTestRouter(Handlers{Accounts: NewAccountHandler(accounts, defaultTestTimeout, discardLog)})

	rec := doMultipart(t, router, "/signup", map[string]string{
		"username": "ravi",
		"mail":     " ravi@example.com ",
		"password": " spaced pw ",
	}, formFileField{field: "pic", name: "me.png", content: []byte("png-bytes")})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, accounts.signedUp)
	assert.Equal(t, "ravi@example.com", accounts.signedUp.Mail)
	assert.Equal(t, " spaced pw ", accounts.signedUp.Password)
	assert.Equal(t, []byte("png-bytes"), accounts.signedUp.Pic)
}

func TestSignup_DuplicateMail(t *testing.T) {
	accounts := &fakeAccounts{err: domain.ErrAlreadyExists}
	router := newTestRouter(Handlers{Accounts: NewAccountHandler(accounts, defaultTestTimeout, discardLog)})

	rec := doJSON(t, router, http.MethodPost, "/signup", SignupRequestDTO{Username: "a", Mail: "a@example.com", Password: "pw"})

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin(t *testing.T) {
	accounts := &fakeAccounts{token: "signed.jwt.token"}
	router := newTestRouter(Handlers{Accounts: NewAccountHandler(accounts, defaultTestTimeout, discardLog)})

	rec := doJSON(t, router, http.MethodPost, "/login", LoginRequestDTO{Mail: "asha@example.com", Password: "pw"})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[UserResponse](t, rec)
	assert.Equal(t, "Login successful", body.Message)
	assert.Equal(t, "signed.jwt.token", body.Token)
	assert.Equal(t, "asha@example.com", body.User.Mail)
}

func TestLogin_BadCredentials(t *testing.T) {
	accounts := &fakeAccounts{err: domain.ErrInvalidCredentials}
	router := newTestRouter(Handlers{Accounts: NewAccountHandler(accounts, defaultTestTimeout, discardLog)})

	rec := doJSON(t, router, http.MethodPost, "/login", LoginRequestDTO{Mail: "asha@example.com", Password: "nope"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_credentials", decodeBody[ErrorResponse](t, rec).Code)
}
