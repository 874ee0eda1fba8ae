package handlers

import (
	"github.com/feichai0017/document-intake/internal/service/intake"
	"github.com/feichai0017/document-intake/pkg/logger"
)

type Handlers struct {
	Document *DocumentHandler
}

func NewHandlers(
	intakeService intake.IntakeService,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Document: NewDocumentHandler(intakeService, log),
	}
}
