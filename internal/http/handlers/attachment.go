package handlers

import (
	"net/http"
	"strings"

	"github.com/HACKWAVE2025/B54/internal/analysis/prompts"
	"github.com/HACKWAVE2025/B54/internal/platform/apierr"
)

type imagePayload struct {
	Data     string `json:"data"`
	MIMEType string `json:"mimeType"`
}

// decodeImage accepts either {data, mimeType} or a data URI. Both absent
// yields nil.
func decodeImage(img *imagePayload, dataURI string) (*prompts.Attachment, error) {
	var (
		att *prompts.Attachment
		err error
	)
	switch {
	case img != nil && strings.TrimSpace(img.Data) != "":
		att, err = prompts.DecodeBase64(img.Data, img.MIMEType)
	case strings.TrimSpace(dataURI) != "":
		att, err = prompts.ParseDataURI(dataURI)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, apierr.New(http.StatusBadRequest, "invalid_attachment", err)
	}
	return att, nil
}
