package slackNotify

import (
	"context"
	"net/http"
	"time"

	"github.com/akolanti/GoDocQA/internal/metrics"
	"github.com/akolanti/GoDocQA/internal/notify"
	"github.com/akolanti/GoDocQA/pkg/logger_i"
	"github.com/slack-go/slack"
)

type slackClient struct {
	api     *slack.Client
	channel string
	logger  *logger_i.Logger
}

// NewSlackNotifier posts to channel with a bot token. apiURL overrides the
// Slack endpoint and must end with a slash; empty keeps the default.
func NewSlackNotifier(token string, channel string, apiURL string, httpClient *http.Client) notify.Notifier {
	options := []slack.Option{}
	if httpClient != nil {
		options = append(options, slack.OptionHTTPClient(httpClient))
	}
	if apiURL != "" {
		options = append(options, slack.OptionAPIURL(apiURL))
	}
	return &slackClient{
		api:     slack.New(token, options...),
		channel: channel,
		logger:  logger_i.NewLogger("Slack Notifier"),
	}
}

func (s *slackClient) Notify(ctx context.Context, message string) (notify.Acknowledgement, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("slack_post", time.Since(start)) }()

	log := s.logger.WithTrace(ctx)

	channel, timestamp, err := s.api.PostMessageContext(ctx, s.channel, slack.MsgOptionText(message, false))
	if err != nil {
		log.Error("Error posting message to Slack", "channel", s.channel, "error", err)
		return notify.Acknowledgement{}, &notify.DeliveryError{Channel: s.channel, Err: err}
	}

	log.Info("Message posted to Slack", "channel", channel, "ts", timestamp)
	return notify.Acknowledgement{Channel: channel, Timestamp: timestamp}, nil
}
