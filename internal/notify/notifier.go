package notify

import (
	"context"
	"fmt"

	"github.com/akolanti/GoDocQA/internal/config"
	"github.com/akolanti/GoDocQA/internal/domain/runModel"
)

// Notifier delivers a formatted message to one statically configured channel.
type Notifier interface {
	Notify(ctx context.Context, message string) (Acknowledgement, error)
}

type Acknowledgement struct {
	Channel   string
	Timestamp string
}

// DeliveryError wraps any transport or destination failure. It is not retried.
type DeliveryError struct {
	Channel string
	Err     error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery to %s failed: %v", e.Channel, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// FormatResults renders results as the message body posted to the channel.
func FormatResults(results runModel.ResultSet) (string, error) {
	body, err := results.PrettyJSON()
	if err != nil {
		return "", err
	}
	return config.SlackMessageHeader + body, nil
}
