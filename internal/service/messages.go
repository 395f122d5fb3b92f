package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/Skotchmaster/portfolio/internal/models"
	"github.com/Skotchmaster/portfolio/internal/mykafka"
	"github.com/Skotchmaster/portfolio/internal/repo"
	"github.com/Skotchmaster/portfolio/internal/transport"
)

type MessageService struct {
	Repo   *repo.GormRepo
	Events mykafka.Publisher
}

func (s *MessageService) Submit(ctx context.Context, req transport.MessageRequest) error {
	m := models.Message{
		SenderName:  strings.TrimSpace(req.SenderName),
		SenderEmail: strings.TrimSpace(req.SenderEmail),
		Body:        strings.TrimSpace(req.Message),
	}
	if err := requireFields(
		field{name: "sender_name", value: m.SenderName},
		field{name: "sender_email", value: m.SenderEmail},
		field{name: "message", value: m.Body},
	); err != nil {
		return err
	}

	if err := s.Repo.CreateMessage(ctx, &m); err != nil {
		return err
	}

	publish(ctx, s.Events, strconv.FormatUint(uint64(m.ID), 10), mykafka.MessageEvent{
		Type:        mykafka.MessageReceived,
		OccurredAt:  time.Now().UTC(),
		MessageID:   m.ID,
		SenderEmail: m.SenderEmail,
	})
	return nil
}

func (s *MessageService) List(ctx context.Context) ([]transport.MessageResponse, error) {
	items, err := s.Repo.ListMessages(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]transport.MessageResponse, len(items))
	for i, m := range items {
		out[i] = transport.MessageResponse{
			ID:          m.ID,
			SenderName:  m.SenderName,
			SenderEmail: m.SenderEmail,
			Message:     m.Body,
			SentAt:      m.SentAt,
		}
	}
	return out, nil
}

func (s *MessageService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.Repo.DeleteMessages(ctx)
	if err != nil {
		return 0, err
	}

	publish(ctx, s.Events, "messages", mykafka.MessageEvent{
		Type:       mykafka.MessagesPurged,
		OccurredAt: time.Now().UTC(),
		Deleted:    n,
	})
	return n, nil
}
