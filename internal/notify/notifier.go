package notify

import (
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
)

// ErrNotification is matched by every failed notification
var ErrNotification = errors.New("notification failed")

const (
	notificationsDest   = "org.freedesktop.Notifications"
	notificationsPath   = "/org/freedesktop/Notifications"
	notificationsNotify = notificationsDest + ".Notify"

	// DefaultAppName is reported to the notification server
	DefaultAppName = "fedora-feedback"
)

// Notifier displays a notification
type Notifier interface {
	Notify(p Payload) error
}

// DBusNotifier talks to the freedesktop notification service on the session bus
type DBusNotifier struct {
	AppName string
	// Timeout in milliseconds; -1 lets the server decide
	Timeout int32
	conn    *dbus.Conn
}

// NewDBusNotifier connects to the session bus
func NewDBusNotifier() (*DBusNotifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot connect to session bus: %v", ErrNotification, err)
	}
	return &DBusNotifier{AppName: DefaultAppName, Timeout: -1, conn: conn}, nil
}

// Notify calls org.freedesktop.Notifications.Notify
func (n *DBusNotifier) Notify(p Payload) error {
	obj := n.conn.Object(notificationsDest, notificationsPath)
	call := obj.Call(notificationsNotify, 0,
		n.AppName,
		uint32(0),
		p.Icon,
		p.Summary,
		p.Body,
		[]string{},
		map[string]dbus.Variant{},
		n.Timeout,
	)
	if call.Err != nil {
		return fmt.Errorf("%w: %v", ErrNotification, call.Err)
	}
	return nil
}
