package player

import (
	"crypto/rand"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/clipwave/clipwave/key"
	"github.com/clipwave/clipwave/log"
	"github.com/clipwave/clipwave/where"
	"github.com/spf13/viper"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	quitTimeout       = 3 * time.Second
)

// MPV implements Player using mpv's JSON IPC protocol.
type MPV struct {
	// Binary is the executable to launch.
	Binary string
	Muted  bool
	Loop   bool

	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}
	listener   *EventListener
	mu         sync.Mutex // serializes socket writes
}

// NewMPV returns an mpv player configured from player.* keys. Nothing
// is launched until Start.
func NewMPV() *MPV {
	binary := viper.GetString(key.Player)
	if binary == "" {
		binary = "mpv"
	}

	return &MPV{
		Binary: binary,
		Muted:  viper.GetBool(key.PlayerMuted),
		Loop:   viper.GetBool(key.PlayerLoop),
		exited: make(chan struct{}),
	}
}

func (m *MPV) args() []string {
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		"--force-window=yes",
		"--idle=yes",
		"--keep-open=yes",
		"--pause=yes",
	}

	if m.Loop {
		args = append(args, "--loop-file=inf")
	}
	if m.Muted {
		args = append(args, "--mute=yes")
	}

	return args
}

// Start launches an idle mpv window and waits for its IPC socket.
func (m *MPV) Start() error {
	if m.IsRunning() {
		return nil
	}

	if m.socketPath == "" {
		random := make([]byte, 4)
		if _, err := rand.Read(random); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(where.Temp(), fmt.Sprintf("mpv-%x.sock", random))
	}

	m.cmd = exec.Command(m.Binary, m.args()...)
	m.cmd.SysProcAttr = ownGroup()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", m.Binary, err)
	}

	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = kill(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	log.Infof("mpv started on %s", m.socketPath)
	return nil
}

// Wait is closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

func (m *MPV) waitForSocket() error {
	for range socketWaitRetries {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// Load replaces whatever is playing with rawURL. The new file starts
// paused; call SetPause(false) to play it.
func (m *MPV) Load(rawURL, title string) error {
	target, err := sanitizeMediaTarget(rawURL)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	if !m.IsRunning() {
		return ErrNotRunning
	}

	if _, err := m.sendCommand("loadfile", target, "replace"); err != nil {
		return err
	}

	if title = sanitizeTitle(title); title != "" {
		return m.Set("force-media-title", title)
	}
	return nil
}

func (m *MPV) SetPause(paused bool) error {
	if !m.IsRunning() {
		return ErrNotRunning
	}
	return m.Set("pause", paused)
}

func (m *MPV) Paused() (bool, error) {
	data, err := m.sendCommand("get_property", "pause")
	if err != nil {
		return false, err
	}
	paused, ok := data.(bool)
	if !ok {
		return false, fmt.Errorf("property pause: expected bool, got %T", data)
	}
	return paused, nil
}

// IsRunning reports whether mpv is responding to IPC commands.
func (m *MPV) IsRunning() bool {
	if m.socketPath == "" {
		return false
	}

	select {
	case <-m.exited:
		return false
	default:
	}

	_, err := m.sendCommand("get_property", "pid")
	return err == nil
}

// Observe starts an event listener on the mpv socket. Only one listener
// is kept; a second call replaces the callback.
func (m *MPV) Observe(fn EventCallback) error {
	if m.socketPath == "" {
		return ErrNotRunning
	}

	if m.listener != nil {
		m.listener.Stop()
	}

	m.listener = NewEventListener(m.socketPath, fn)
	return m.listener.Start()
}

// Close quits mpv, killing it if it does not exit in time, and removes
// the socket.
func (m *MPV) Close() error {
	if m.listener != nil {
		m.listener.Stop()
		m.listener = nil
	}

	if m.socketPath == "" {
		return nil
	}

	_, _ = m.sendCommand("quit")

	select {
	case <-m.exited:
	case <-time.After(quitTimeout):
		_ = kill(m.cmd)
	}

	_ = os.Remove(m.socketPath)
	return nil
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

// Set sets an mpv property.
func (m *MPV) Set(property string, value any) error {
	_, err := m.sendCommand("set_property", property, value)
	return err
}

// sanitizeMediaTarget rejects anything mpv could read as a flag or an
// unexpected protocol.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
