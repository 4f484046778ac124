// Package server exposes the wizard's intents and notifications over a
// JSON-lines unix socket so an external host can drive it.
package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/rostart/rostart/internal/host"
	"github.com/rostart/rostart/internal/log"
	"github.com/rostart/rostart/internal/server/models"
	"github.com/rostart/rostart/internal/wizard"
)

const socketPrefix = "rostart-"

// StateFunc returns the current wizard state for wizard.state.
type StateFunc func() wizard.State

type Server struct {
	hub        *host.Hub
	state      StateFunc
	socketPath string

	connWg sync.WaitGroup
}

// New builds a server. An empty socketPath selects GetSocketPath.
func New(hub *host.Hub, state StateFunc, socketPath string) *Server {
	if socketPath == "" {
		socketPath = GetSocketPath()
	}
	return &Server{hub: hub, state: state, socketPath: socketPath}
}

func (s *Server) SocketPath() string { return s.socketPath }

func getSocketDir() string {
	if runtime := os.Getenv("XDG_RUNTIME_DIR"); runtime != "" {
		return runtime
	}
	return os.TempDir()
}

func GetSocketPath() string {
	return filepath.Join(getSocketDir(), fmt.Sprintf("%s%d.sock", socketPrefix, os.Getpid()))
}

func socketPID(name string) (int, bool) {
	if !strings.HasPrefix(name, socketPrefix) || !strings.HasSuffix(name, ".sock") {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, socketPrefix), ".sock"))
	if err != nil {
		return 0, false
	}
	return pid, true
}

func processAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// On Unix FindProcess always succeeds, signal 0 checks existence.
	return process.Signal(syscall.Signal(0)) == nil
}

func cleanupStaleSockets() {
	dir := getSocketDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		pid, ok := socketPID(entry.Name())
		if !ok || processAlive(pid) {
			continue
		}
		socketPath := filepath.Join(dir, entry.Name())
		os.Remove(socketPath)
		log.Debugf("Removed stale socket: %s", socketPath)
	}
}

// FindSocket locates the socket of a running wizard.
func FindSocket() (string, error) {
	if path := os.Getenv("ROSTART_SOCKET"); path != "" {
		return path, nil
	}

	dir := getSocketDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", dir, err)
	}
	for _, entry := range entries {
		if pid, ok := socketPID(entry.Name()); ok && processAlive(pid) {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", fmt.Errorf("no running rostart wizard found in %s", dir)
}

// Serve listens until ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	cleanupStaleSockets()
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return err
	}
	defer os.Remove(s.socketPath)

	log.Infof("API server listening on: %s", s.socketPath)

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				s.connWg.Wait()
				return nil
			}
			return err
		}
		s.connWg.Add(1)
		go func() {
			defer s.connWg.Done()
			s.handleConnection(ctx, conn)
		}()
	}
}

func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-connCtx.Done()
		conn.Close()
	}()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var req models.Request
		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
			models.RespondError(conn, nil, "invalid json")
			continue
		}

		if req.Method == "wizard.subscribe" {
			s.handleSubscribe(connCtx, conn, req)
			return
		}
		s.RouteRequest(conn, req)
	}
}
