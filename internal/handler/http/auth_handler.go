package http

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
	"github.com/mikiasgoitom/Coursely/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/Coursely/internal/usecase/contract"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type AuthHandler struct {
	authUsecase  usecasecontract.IAuthUseCase
	BaseURL      string
	googleConfig *oauth2.Config
}

func NewAuthHandler(uc usecasecontract.IAuthUseCase, baseURL, googleClientID, googleClientSecret string) *AuthHandler {
	return &AuthHandler{
		authUsecase: uc,
		BaseURL:     baseURL,
		googleConfig: &oauth2.Config{
			ClientID:     googleClientID,
			ClientSecret: googleClientSecret,
			RedirectURL:  strings.TrimRight(baseURL, "/") + "/api/v1/auth/google/callback",
			Scopes:       []string{"email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

type UserInfo struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// Signup handles public registration for students and creators
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	identity, err := h.authUsecase.Signup(c.Request.Context(), usecasecontract.SignupInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      entity.UserRole(strings.ToLower(req.Role)),
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	h.signedUp(c, identity)
}

// AdminSignup registers an admin account guarded by the admin access code
func (h *AuthHandler) AdminSignup(c *gin.Context) {
	var req dto.AdminSignupRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	identity, err := h.authUsecase.AdminSignup(c.Request.Context(), usecasecontract.SignupInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}, req.AccessCode)
	if err != nil {
		HandleError(c, err)
		return
	}
	h.signedUp(c, identity)
}

func (h *AuthHandler) signedUp(c *gin.Context, identity *entity.Identity) {
	message := "Account created. Please check your email to confirm your address."
	if identity.IsConfirmed() {
		message = "Account created."
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  message,
		"identity": dto.ToIdentityResponse(*identity),
	})
}

// ConfirmEmail accepts {token} or {email, confirmationCode} and answers {success, error}
func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	var req dto.ConfirmEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ConfirmEmailResponse{Success: false, Error: "invalid request body"})
		return
	}

	_, err := h.authUsecase.ConfirmEmail(c.Request.Context(), usecasecontract.ConfirmEmailInput{
		Token: req.Token,
		Email: req.Email,
		Code:  req.ConfirmationCode,
	})
	if err != nil {
		status := StatusFor(err)
		message := err.Error()
		if status == http.StatusInternalServerError {
			message = internalErrorMessage
		}
		c.JSON(status, dto.ConfirmEmailResponse{Success: false, Error: message})
		return
	}
	c.JSON(http.StatusOK, dto.ConfirmEmailResponse{Success: true})
}

// ResendConfirmation always answers the same way so registered emails are not revealed
func (h *AuthHandler) ResendConfirmation(c *gin.Context) {
	var req dto.ResendConfirmationRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	if err := h.authUsecase.ResendConfirmation(c.Request.Context(), req.Email); err != nil {
		HandleError(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "If the address is awaiting confirmation, a new email has been sent.")
}

// Login handles user authentication
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	res, err := h.authUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, toLoginResponse(res))
}

// RefreshToken rotates the refresh token and returns a new pair
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	accessToken, refreshToken, err := h.authUsecase.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if StatusFor(err) == http.StatusBadRequest {
			ErrorHandler(c, http.StatusUnauthorized, err.Error())
			return
		}
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.TokenPairResponse{AccessToken: accessToken, RefreshToken: refreshToken})
}

// Logout invalidates the session bound to the refresh token
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	if err := h.authUsecase.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		HandleError(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Logged out successfully")
}

func (h *AuthHandler) HandleGoogleLogin(ctx *gin.Context) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		ErrorHandler(ctx, http.StatusInternalServerError, internalErrorMessage)
		return
	}
	oauthStateString := base64.URLEncoding.EncodeToString(b)
	ctx.SetCookie("oauthState", oauthStateString, 300, "/", "", false, true)

	url := h.googleConfig.AuthCodeURL(oauthStateString)
	ctx.Redirect(http.StatusTemporaryRedirect, url)
}

func (h *AuthHandler) HandleGoogleCallback(ctx *gin.Context) {
	state := ctx.Query("state")
	cookieState, err := ctx.Cookie("oauthState")
	if err != nil || state == "" || state != cookieState {
		ErrorHandler(ctx, http.StatusUnauthorized, "invalid CSRF state token")
		return
	}
	ctx.SetCookie("oauthState", "", -1, "/", "", false, true)

	code := ctx.Query("code")
	if code == "" {
		ErrorHandler(ctx, http.StatusBadRequest, "authorization code not provided")
		return
	}

	requestCtx := ctx.Request.Context()
	token, err := h.googleConfig.Exchange(requestCtx, code)
	if err != nil {
		ErrorHandler(ctx, http.StatusUnauthorized, fmt.Sprintf("failed to exchange authorization code: %v", err))
		return
	}

	client := h.googleConfig.Client(requestCtx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		ErrorHandler(ctx, http.StatusBadGateway, "failed to get user info")
		return
	}
	defer resp.Body.Close()

	var userInfo UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil || userInfo.Email == "" {
		ErrorHandler(ctx, http.StatusBadGateway, "failed to decode user info")
		return
	}

	firstName, lastName := userInfo.GivenName, userInfo.FamilyName
	if firstName == "" && lastName == "" {
		firstName, lastName, _ = strings.Cut(strings.TrimSpace(userInfo.Name), " ")
	}

	res, err := h.authUsecase.LoginWithOAuth(requestCtx, firstName, lastName, userInfo.Email)
	if err != nil {
		HandleError(ctx, err)
		return
	}
	SuccessHandler(ctx, http.StatusOK, toLoginResponse(res))
}

func toLoginResponse(res *usecasecontract.LoginResult) dto.LoginResponse {
	out := dto.LoginResponse{
		Identity:     dto.ToIdentityResponse(*res.Identity),
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	}
	if res.Profile != nil {
		p := dto.ToProfileResponse(*res.Profile)
		out.Profile = &p
	}
	return out
}
