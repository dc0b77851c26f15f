package prompts

import (
	"errors"
	"fmt"
	"strings"
)

var ErrAttachmentRequired = errors.New("an image attachment is required")

// InputError means the caller's input was rejected before any model call.
type InputError struct {
	Prompt PromptName
	Err    error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %v", e.Prompt, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// RequireNonEmpty fails when the named input is blank.
func RequireNonEmpty(label string, get func(Input) string) Validator {
	return func(in Input) error {
		if strings.TrimSpace(get(in)) == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

// RequireTextOrAttachment accepts either report text or an attachment.
func RequireTextOrAttachment(in Input) error {
	if in.ReportText == "" && in.Attachment == nil {
		return errors.New("report text or an attachment is required")
	}
	return nil
}

func RequireImage(in Input) error {
	if in.Attachment == nil || len(in.Attachment.Data) == 0 {
		return ErrAttachmentRequired
	}
	if !in.Attachment.IsImage() {
		return fmt.Errorf("%w (got %s)", ErrAttachmentRequired, in.Attachment.MIMEType)
	}
	return nil
}
