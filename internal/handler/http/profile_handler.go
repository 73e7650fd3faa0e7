package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
	"github.com/mikiasgoitom/Coursely/internal/handler/http/dto"
	"github.com/mikiasgoitom/Coursely/internal/handler/http/middleware"
	usecasecontract "github.com/mikiasgoitom/Coursely/internal/usecase/contract"
)

type ProfileHandler struct {
	profileUsecase usecasecontract.IProfileUseCase
}

func NewProfileHandler(uc usecasecontract.IProfileUseCase) *ProfileHandler {
	return &ProfileHandler{profileUsecase: uc}
}

// GetMe returns the caller's own profile. Suspended callers can still read it.
func (h *ProfileHandler) GetMe(c *gin.Context) {
	principal := middleware.PrincipalFrom(c)
	profile, err := h.profileUsecase.GetProfile(c.Request.Context(), principal, principal.ID)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToProfileResponse(*profile))
}

func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	profile, err := h.profileUsecase.UpdateOwnProfile(c.Request.Context(), middleware.PrincipalFrom(c), req.FirstName, req.LastName)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToProfileResponse(*profile))
}

// GetProfile returns another profile when the caller may see it (self, admin, or a public creator).
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileUsecase.GetProfile(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToProfileResponse(*profile))
}

type AdminHandler struct {
	profileUsecase usecasecontract.IProfileUseCase
}

func NewAdminHandler(uc usecasecontract.IProfileUseCase) *AdminHandler {
	return &AdminHandler{profileUsecase: uc}
}

func (h *AdminHandler) ListProfiles(c *gin.Context) {
	page, pageSize := pageParams(c)
	profiles, total, err := h.profileUsecase.ListProfiles(c.Request.Context(), middleware.PrincipalFrom(c), page, pageSize)
	if err != nil {
		HandleError(c, err)
		return
	}

	items := make([]dto.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, dto.ToProfileResponse(p))
	}
	SuccessHandler(c, http.StatusOK, dto.PageResponse{Items: items, Total: total, Page: page, PageSize: pageSize})
}

func (h *AdminHandler) SetRole(c *gin.Context) {
	var req dto.SetRoleRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	profile, err := h.profileUsecase.SetRole(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), entity.UserRole(req.Role))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToProfileResponse(*profile))
}

// SetStatus suspends or reactivates a profile.
func (h *AdminHandler) SetStatus(c *gin.Context) {
	var req dto.SetStatusRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	profile, err := h.profileUsecase.SetStatus(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), entity.ProfileStatus(req.Status))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToProfileResponse(*profile))
}
