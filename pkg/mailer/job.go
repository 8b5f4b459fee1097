package mailer

import "fmt"

// Job kinds consumed by the notification worker.
const (
	KindWelcome  = "welcome"
	KindNewVideo = "new_video"
)

// Job is the JSON payload put on the RabbitMQ notification queue. Welcome
// mails carry the recipient directly; new-video mails carry the channel id
// and the worker fans out to that channel's subscribers.
type Job struct {
	Kind      string `json:"kind"`
	To        string `json:"to,omitempty"`
	UserName  string `json:"userName,omitempty"`
	ChannelID string `json:"channelId,omitempty"`
	VideoID   string `json:"videoId,omitempty"`
	Title     string `json:"title,omitempty"`
}

// Render produces the subject and plain-text body for a job.
func (j Job) Render() (subject, text string) {
	switch j.Kind {
	case KindWelcome:
		return "Welcome to StreamVault",
			fmt.Sprintf("Hi %s,\n\nyour channel is ready. Upload your first video any time.", j.UserName)
	case KindNewVideo:
		return fmt.Sprintf("%s uploaded: %s", j.UserName, j.Title),
			fmt.Sprintf("%s just published a new video: %s", j.UserName, j.Title)
	default:
		return "Notification", ""
	}
}
