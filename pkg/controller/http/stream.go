package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/domain/model"
	"github.com/gametheory-pro/gtpro/pkg/usecase"
	"github.com/gametheory-pro/gtpro/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

const (
	EventRiskUpdate  = "risk_update"
	EventCrisisEvent = "crisis_event"

	streamBuffer = 32
)

type streamEvent struct {
	name string
	data any
}

// streamHandler relays the two realtime channels as server-sent events.
// Risk updates are limited to the caller's own assessments. Events that do
// not fit the buffer of a slow client are dropped.
func streamHandler(uc *usecase.UseCases, keepAlive time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()
		userID := userFrom(ctx).ID
		rc := http.NewResponseController(w)

		events := make(chan streamEvent, streamBuffer)
		send := func(ev streamEvent) {
			select {
			case events <- ev:
			default:
				logging.From(ctx).Warn("dropping stream event for slow client", "event", ev.name)
			}
		}

		stopRisk := uc.Persistence.SubscribeRiskUpdates(ctx, func(a *model.RiskAssessment) {
			if a.UserID == userID {
				send(streamEvent{name: EventRiskUpdate, data: a})
			}
		})
		defer stopRisk()
		stopCrisis := uc.Persistence.SubscribeCrisisEvents(ctx, func(a *model.CrisisAlert) {
			send(streamEvent{name: EventCrisisEvent, data: a})
		})
		defer stopCrisis()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		if _, err := fmt.Fprint(w, ": connected\n\n"); err != nil {
			return
		}
		if err := rc.Flush(); err != nil {
			logging.From(ctx).Warn("event stream is not flushable", "error", err.Error())
			return
		}

		ticker := time.NewTicker(keepAlive)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
					return
				}
			case ev := <-events:
				if err := writeEvent(w, ev); err != nil {
					logging.From(ctx).Warn("failed to write stream event", "error", err.Error())
					return
				}
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, ev streamEvent) error {
	data, err := json.Marshal(ev.data)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal stream event", goerr.V("event", ev.name))
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.name, data); err != nil {
		return goerr.Wrap(err, "failed to write stream event", goerr.V("event", ev.name))
	}
	return nil
}
