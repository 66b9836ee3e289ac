package notify

import (
	"fmt"
	"strconv"
	"time"

	"hubgrab/internal/launch"
)

type notifySendBackend struct {
	path string
}

func (b *notifySendBackend) Name() string { return "notify-send" }

func (b *notifySendBackend) Send(message, title string, timeout time.Duration) error {
	ms := strconv.Itoa(int(timeout / time.Millisecond))
	return launch.Detach(b.path, "-t", ms, title, message)
}

type kdialogBackend struct {
	path string
}

func (b *kdialogBackend) Name() string { return "kdialog" }

func (b *kdialogBackend) Send(message, title string, timeout time.Duration) error {
	secs := strconv.Itoa(int(timeout / time.Second))
	return launch.Detach(b.path, "--passivepopup", message, secs, "--title", title)
}

type zenityBackend struct {
	path string
}

func (b *zenityBackend) Name() string { return "zenity" }

func (b *zenityBackend) Send(message, title string, timeout time.Duration) error {
	return launch.Detach(b.path, "--notification", fmt.Sprintf("--text=%s: %s", title, message))
}
