package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/HACKWAVE2025/B54/internal/alerts"
	"github.com/HACKWAVE2025/B54/internal/analysis/extract"
	"github.com/HACKWAVE2025/B54/internal/analysis/prompts"
	"github.com/HACKWAVE2025/B54/internal/analysis/results"
	"github.com/HACKWAVE2025/B54/internal/clients/gemini"
	"github.com/HACKWAVE2025/B54/internal/observability"
	"github.com/HACKWAVE2025/B54/internal/platform/apierr"
	"github.com/HACKWAVE2025/B54/internal/platform/ctxutil"
	"github.com/HACKWAVE2025/B54/internal/platform/logger"
)

// Analysis wraps a typed result with the schema gap found while decoding it.
type Analysis[T results.Result] struct {
	Kind   results.Kind           `json:"kind"`
	Result T                      `json:"result"`
	Gap    *results.ValidationGap `json:"validationGap,omitempty"`
}

type MedicalAnalysis struct {
	Analysis[results.MedicalResult]
	Severity results.Severity `json:"severity"`
	// Alert is set only when the result triggered a dispatch.
	Alert *AlertOutcome `json:"alert,omitempty"`
}

type AlertOutcome struct {
	Kind    alerts.Kind `json:"kind"`
	Channel string      `json:"channel"`
	alerts.Result
}

type MedicalRequest struct {
	ReportText string
	ReportType string
	Language   string
	Attachment *prompts.Attachment
}

type CropRequest struct {
	CropPart    string
	Description string
	Language    string
	Attachment  *prompts.Attachment
}

type WellnessLogRequest struct {
	FoodIntake       string
	ActivityType     string
	ActivityDuration string
	Language         string
}

type AnalysisService interface {
	// AnalyzeMedical picks the report-type template, decodes the result and,
	// when severity is HIGH, dispatches exactly one alert.
	AnalyzeMedical(ctx context.Context, req MedicalRequest) (*MedicalAnalysis, error)
	AnalyzeCrop(ctx context.Context, req CropRequest) (*Analysis[results.CropResult], error)
	FindFacilities(ctx context.Context, location, facilityType, language string) (*Analysis[results.FacilityList], error)
	OrganInfo(ctx context.Context, organ, language string) (*Analysis[results.OrganInfo], error)
	AnalyzeMedicine(ctx context.Context, medicineName, language string) (*Analysis[results.MedicineResult], error)
	AnalyzeWellnessLog(ctx context.Context, req WellnessLogRequest) (*Analysis[results.WellnessLogResult], error)
	WellnessTip(ctx context.Context, category, language string) (*results.WellnessTip, error)
}

type analysisService struct {
	log      *logger.Logger
	gen      gemini.Client
	notifier *alerts.Notifier
	metrics  *observability.Metrics
}

func NewAnalysisService(baseLog *logger.Logger, gen gemini.Client, notifier *alerts.Notifier, metrics *observability.Metrics) AnalysisService {
	if baseLog == nil {
		baseLog = logger.NewNop()
	}
	return &analysisService{
		log:      baseLog.With("service", "AnalysisService"),
		gen:      gen,
		notifier: notifier,
		metrics:  metrics,
	}
}

func (s *analysisService) AnalyzeMedical(ctx context.Context, req MedicalRequest) (*MedicalAnalysis, error) {
	name := prompts.ReportPrompt(req.ReportType)
	res, gap, err := runStructured(s, ctx, name, prompts.Input{
		ReportText: req.ReportText,
		ReportType: req.ReportType,
		Language:   req.Language,
		Attachment: req.Attachment,
	}, func(raw string) (results.MedicalResult, *results.ValidationGap, error) {
		return results.Medical(raw, name)
	})
	if err != nil {
		return nil, err
	}

	out := &MedicalAnalysis{
		Analysis: Analysis[results.MedicalResult]{Kind: results.KindMedical, Result: res, Gap: gap},
		Severity: res.Severity(),
	}
	if a, ok := alerts.ForMedical(res, req.ReportType); ok && s.notifier != nil {
		r := s.notifier.Notify(ctx, a)
		out.Alert = &AlertOutcome{Kind: a.Kind, Channel: s.notifier.Channel(), Result: r}
	}
	return out, nil
}

func (s *analysisService) AnalyzeCrop(ctx context.Context, req CropRequest) (*Analysis[results.CropResult], error) {
	res, gap, err := runStructured(s, ctx, prompts.PromptCropAnalysis, prompts.Input{
		CropPart:    req.CropPart,
		Description: req.Description,
		Language:    req.Language,
		Attachment:  req.Attachment,
	}, results.Crop)
	if err != nil {
		return nil, err
	}
	return &Analysis[results.CropResult]{Kind: results.KindCrop, Result: res, Gap: gap}, nil
}

func (s *analysisService) FindFacilities(ctx context.Context, location, facilityType, language string) (*Analysis[results.FacilityList], error) {
	res, gap, err := runStructured(s, ctx, prompts.PromptNearbyFacilities, prompts.Input{
		Location:     location,
		FacilityType: facilityType,
		Language:     language,
	}, results.Facilities)
	if err != nil {
		return nil, err
	}
	if res == nil {
		res = results.FacilityList{}
	}
	return &Analysis[results.FacilityList]{Kind: results.KindFacilities, Result: res, Gap: gap}, nil
}

func (s *analysisService) OrganInfo(ctx context.Context, organ, language string) (*Analysis[results.OrganInfo], error) {
	res, gap, err := runStructured(s, ctx, prompts.PromptOrganInformation, prompts.Input{
		Organ:    organ,
		Language: language,
	}, results.Organ)
	if err != nil {
		return nil, err
	}
	return &Analysis[results.OrganInfo]{Kind: results.KindOrgan, Result: res, Gap: gap}, nil
}

func (s *analysisService) AnalyzeMedicine(ctx context.Context, medicineName, language string) (*Analysis[results.MedicineResult], error) {
	res, gap, err := runStructured(s, ctx, prompts.PromptMedicineAnalysis, prompts.Input{
		MedicineName: medicineName,
		Language:     language,
	}, results.Medicine)
	if err != nil {
		return nil, err
	}
	return &Analysis[results.MedicineResult]{Kind: results.KindMedicine, Result: res, Gap: gap}, nil
}

func (s *analysisService) AnalyzeWellnessLog(ctx context.Context, req WellnessLogRequest) (*Analysis[results.WellnessLogResult], error) {
	res, gap, err := runStructured(s, ctx, prompts.PromptWellnessLog, prompts.Input{
		FoodIntake:       req.FoodIntake,
		ActivityType:     req.ActivityType,
		ActivityDuration: req.ActivityDuration,
		Language:         req.Language,
	}, results.WellnessLog)
	if err != nil {
		return nil, err
	}
	return &Analysis[results.WellnessLogResult]{Kind: results.KindWellnessLog, Result: res, Gap: gap}, nil
}

func (s *analysisService) WellnessTip(ctx context.Context, category, language string) (*results.WellnessTip, error) {
	name, err := prompts.WellnessTipPrompt(category)
	if err != nil {
		return nil, apierr.New(http.StatusBadRequest, "invalid_category", err)
	}
	p, err := s.build(name, prompts.Input{Language: language})
	if err != nil {
		return nil, err
	}
	text, err := s.gen.Generate(ctx, p)
	if err != nil {
		return nil, err
	}
	return &results.WellnessTip{Category: strings.TrimSpace(category), Text: strings.TrimSpace(text)}, nil
}

func (s *analysisService) build(name prompts.PromptName, in prompts.Input) (prompts.Prompt, error) {
	p, err := prompts.Build(name, in)
	if err != nil {
		var ie *prompts.InputError
		if errors.As(err, &ie) {
			return prompts.Prompt{}, apierr.New(http.StatusBadRequest, "invalid_input", err)
		}
		return prompts.Prompt{}, err
	}
	return p, nil
}

// runStructured builds the prompt, makes one structured call and decodes the
// reply. A gap is logged and counted but does not fail the call.
func runStructured[T results.Result](
	s *analysisService,
	ctx context.Context,
	name prompts.PromptName,
	in prompts.Input,
	decode func(raw string) (T, *results.ValidationGap, error),
) (T, *results.ValidationGap, error) {
	var zero T
	ctx = ctxutil.Default(ctx)
	ctx, span := observability.Tracer().Start(ctx, "analysis."+string(name))
	defer span.End()

	p, err := s.build(name, in)
	if err != nil {
		span.SetStatus(codes.Error, "invalid_input")
		return zero, nil, err
	}
	span.SetAttributes(
		attribute.String("b54.prompt", string(p.Name)),
		attribute.Int("b54.prompt.version", p.Version),
		attribute.Bool("b54.attachment", p.Attachment != nil),
	)

	log := s.log.With("prompt", string(p.Name), "request_id", ctxutil.RequestID(ctx))
	fields := []any{"prompt_fp", shortFingerprint(p)}
	if p.Attachment != nil {
		fields = append(fields, "attachment_mime", p.Attachment.MIMEType, "attachment_size", p.Attachment.Size())
	}
	log.Debug("structured generation start", fields...)

	start := time.Now()
	raw, err := s.gen.GenerateStructured(ctx, p)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation_failed")
		return zero, nil, err
	}

	out, gap, err := decode(raw)
	if err != nil {
		var me *extract.MalformedOutputError
		if errors.As(err, &me) {
			s.metrics.IncExtractFailure(string(p.Name))
			log.Warn("model output not parseable", "candidate_chars", len(me.Candidate), "error", err.Error())
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "extract_failed")
		return zero, nil, err
	}
	if gap != nil {
		s.metrics.IncValidationGap(string(p.Name))
		log.Warn("validation gap", "missing", gap.Missing, "violations", len(gap.Violations))
		span.SetAttributes(attribute.Int("b54.validation.missing", len(gap.Missing)))
	}
	log.Info("structured generation ok", "duration_ms", time.Since(start).Milliseconds())
	return out, gap, nil
}

func shortFingerprint(p prompts.Prompt) string {
	fp := p.Fingerprint()
	if len(fp) > 16 {
		return fp[:16]
	}
	return fp
}
