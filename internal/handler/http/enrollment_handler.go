package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Coursely/internal/handler/http/dto"
	"github.com/mikiasgoitom/Coursely/internal/handler/http/middleware"
	usecasecontract "github.com/mikiasgoitom/Coursely/internal/usecase/contract"
)

type EnrollmentHandler struct {
	enrollmentUsecase usecasecontract.IEnrollmentUseCase
}

func NewEnrollmentHandler(uc usecasecontract.IEnrollmentUseCase) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentUsecase: uc}
}

// Enroll answers 201 for a new enrollment and 200 when the caller was already enrolled.
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	enrollment, created, err := h.enrollmentUsecase.Enroll(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	SuccessHandler(c, status, dto.ToEnrollmentResponse(*enrollment))
}

func (h *EnrollmentHandler) ListMyEnrollments(c *gin.Context) {
	enrollments, err := h.enrollmentUsecase.ListMyEnrollments(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	items := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, e := range enrollments {
		items = append(items, dto.ToEnrollmentResponse(e))
	}
	SuccessHandler(c, http.StatusOK, gin.H{"items": items})
}

// Playback issues a short-lived signed URL for the course video.
func (h *EnrollmentHandler) Playback(c *gin.Context) {
	playback, err := h.enrollmentUsecase.PlaybackURL(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.PlaybackResponse{URL: playback.URL, ExpiresAt: playback.ExpiresAt})
}

// ResolveMedia redirects a valid signed media token to the stored object.
func (h *EnrollmentHandler) ResolveMedia(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		ErrorHandler(c, http.StatusBadRequest, "token is required")
		return
	}
	url, err := h.enrollmentUsecase.ResolveSignedMedia(c.Request.Context(), token)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}
