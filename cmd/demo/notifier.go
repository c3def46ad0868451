package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/NARUBROWN/axon/pkg/future"
	pkgws "github.com/NARUBROWN/axon/pkg/ws"
)

type NotifierService struct{}

func NewNotifierService() *NotifierService {
	return &NotifierService{}
}

type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Notify는 값 없이 완료 신호만 돌려주는 AsyncVoid 예시입니다.
// WebSocket 허브에서 호출되면 같은 연결로 알림 프레임을 push합니다.
func (s *NotifierService) Notify(ctx context.Context, notification Notification) *future.Void {
	done := future.NewVoid()

	go func() {
		payload, err := json.Marshal(notification)
		if err != nil {
			done.Fail(err)
			return
		}

		if err := pkgws.Send(ctx, payload); err != nil {
			done.Fail(err)
			return
		}

		log.Printf("[Demo] 알림 발송: %s", notification.Title)
		done.Complete()
	}()

	return done
}
