package error_notificator

import (
	"context"
	"log"
)

type Service struct {
	infra Notificator
}

func NewService(infra Notificator) *Service {
	if infra == nil {
		infra = LogInfra{}
	}
	return &Service{infra: infra}
}

// Notify is best effort: delivery errors are logged and returned, never retried.
func (s *Service) Notify(ctx context.Context, stage string, err error, details string) error {
	if sendErr := s.infra.Notify(ctx, stage, err, details); sendErr != nil {
		log.Printf("[error_notificator] notify stage=%s failed: %v", stage, sendErr)
		return sendErr
	}
	return nil
}
