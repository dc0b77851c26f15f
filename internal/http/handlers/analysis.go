package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HACKWAVE2025/B54/internal/http/response"
	"github.com/HACKWAVE2025/B54/internal/services"
)

type AnalysisHandler struct {
	analysis services.AnalysisService
}

func NewAnalysisHandler(analysis services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysis: analysis}
}

type medicalReq struct {
	ReportText   string        `json:"reportText"`
	ReportType   string        `json:"reportType"`
	Language     string        `json:"language"`
	Image        *imagePayload `json:"image"`
	ImageDataURI string        `json:"imageDataUri"`
}

// POST /api/analyze/medical
func (h *AnalysisHandler) AnalyzeMedical(c *gin.Context) {
	var req medicalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	att, err := decodeImage(req.Image, req.ImageDataURI)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	out, err := h.analysis.AnalyzeMedical(c.Request.Context(), services.MedicalRequest{
		ReportText: req.ReportText,
		ReportType: req.ReportType,
		Language:   req.Language,
		Attachment: att,
	})
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

type cropReq struct {
	Description  string        `json:"description"`
	CropPart     string        `json:"cropPart"`
	Language     string        `json:"language"`
	Image        *imagePayload `json:"image"`
	ImageDataURI string        `json:"imageDataUri"`
}

// POST /api/analyze/crop
func (h *AnalysisHandler) AnalyzeCrop(c *gin.Context) {
	var req cropReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	att, err := decodeImage(req.Image, req.ImageDataURI)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	out, err := h.analysis.AnalyzeCrop(c.Request.Context(), services.CropRequest{
		CropPart:    req.CropPart,
		Description: req.Description,
		Language:    req.Language,
		Attachment:  att,
	})
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

type wellnessLogReq struct {
	FoodIntake       string `json:"foodIntake"`
	ActivityType     string `json:"activityType"`
	ActivityDuration string `json:"activityDuration"`
	Language         string `json:"language"`
}

// POST /api/analyze/wellness-log
func (h *AnalysisHandler) AnalyzeWellnessLog(c *gin.Context) {
	var req wellnessLogReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := h.analysis.AnalyzeWellnessLog(c.Request.Context(), services.WellnessLogRequest{
		FoodIntake:       req.FoodIntake,
		ActivityType:     req.ActivityType,
		ActivityDuration: req.ActivityDuration,
		Language:         req.Language,
	})
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

type medicineReq struct {
	MedicineName string `json:"medicineName"`
	Language     string `json:"language"`
}

// POST /api/analyze/medicine
func (h *AnalysisHandler) AnalyzeMedicine(c *gin.Context) {
	var req medicineReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out, err := h.analysis.AnalyzeMedicine(c.Request.Context(), req.MedicineName, req.Language)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/facilities?location=&type=&language=
func (h *AnalysisHandler) FindFacilities(c *gin.Context) {
	out, err := h.analysis.FindFacilities(c.Request.Context(), c.Query("location"), c.Query("type"), c.Query("language"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/organs/:organ?language=
func (h *AnalysisHandler) OrganInfo(c *gin.Context) {
	out, err := h.analysis.OrganInfo(c.Request.Context(), c.Param("organ"), c.Query("language"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/wellness/tips/:category?language=
func (h *AnalysisHandler) WellnessTip(c *gin.Context) {
	tip, err := h.analysis.WellnessTip(c.Request.Context(), c.Param("category"), c.Query("language"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"tip": tip})
}
