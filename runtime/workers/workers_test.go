package workers

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"support-chat/domain"
	"support-chat/mocks"
	"support-chat/observability"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestProcessSampler_Returns_Nil_On_Cancel(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelError)
	sampler := NewProcessSampler(observability.NewMonitor(log), 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	req.NoError(sampler.Run(ctx))
}

func TestStatsReporter_Reports_Until_Cancel(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelError)
	ctrl := gomock.NewController(t)
	relay := mocks.NewMockIRelay(ctrl)

	// At least the final report on the way out
	relay.EXPECT().
		ConnectedUsers().
		Return([]domain.ConnectedUser{{UserKey: "a@b,com", Email: "a@b.com"}}).
		MinTimes(1)

	reporter := NewStatsReporter(relay, observability.NewMonitor(log), 10*time.Millisecond, log)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	req.NoError(reporter.Run(ctx))
}
