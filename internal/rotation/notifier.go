package rotation

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/silverbridge/seniorfit-cli/internal/model"
	"github.com/silverbridge/seniorfit-cli/internal/risk"
)

// Notification is the outcome of a danger check for one user. When outdoor
// conditions are risky it carries a home-exercise suggestion picked by the
// daily rotation.
type Notification struct {
	HasNotification bool                 `json:"has_notification"`
	Message         string               `json:"message"`
	Video           *model.ExerciseVideo `json:"video,omitempty"`
	Region          string               `json:"region,omitempty"`
}

// Notifier composes the weather-risk classifier with the rotation selector.
type Notifier struct {
	selector *Selector
}

func NewNotifier(selector *Selector) *Notifier {
	return &Notifier{selector: selector}
}

// Notify classifies the given conditions and, when they are dangerous,
// attaches today's rotated video as an indoor alternative. Safe conditions
// produce no notification, and neither does an empty video catalog.
func (n *Notifier) Notify(ctx context.Context, userID string, input risk.Input, videos []model.ExerciseVideo) (Notification, error) {
	verdict := risk.Classify(input)
	if !verdict.Dangerous {
		return Notification{HasNotification: false, Message: risk.SafeMessage}, nil
	}

	entry, err := n.selector.ChooseForToday(ctx, userID, videos)
	if err != nil {
		return Notification{}, eris.Wrap(err, "rotation: notify")
	}
	if entry == nil {
		return Notification{HasNotification: false, Message: verdict.Reason}, nil
	}

	video := entry.Video
	return Notification{
		HasNotification: true,
		Message: fmt.Sprintf(
			"Today brings %s conditions. Better to skip going out and exercise at home instead. We suggest %s: %s",
			verdict.Reason, video.Name, video.URL),
		Video:  &video,
		Region: entry.Region,
	}, nil
}
