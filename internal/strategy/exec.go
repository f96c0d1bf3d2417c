package strategy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strconv"

	"github.com/google/uuid"

	"github.com/shaiso/Kannon/internal/mq"
	"github.com/shaiso/Kannon/internal/queue"
	"github.com/shaiso/Kannon/internal/worker"
)

// ExitCodeTasksFailed: код выхода воркера-процесса, который дочитал
// очередь, но часть задач завершилась ошибкой. Отчёт при этом выведен.
const ExitCodeTasksFailed = 2

// ExecConfig: конфигурация ExecLauncher.
type ExecConfig struct {
	// Command: argv до флагов воркера, например {"/usr/bin/kannon", "worker"}.
	Command []string

	// Args: флаги, общие для всех воркеров (брокер, Redis, стиль, ...).
	Args []string

	// Env: дополнительные переменные окружения воркеров.
	Env []string

	// Conn: соединение драйвера с брокером (для Open/Close).
	Conn *mq.Connection

	// Stderr: куда писать логи воркеров (по умолчанию os.Stderr).
	Stderr io.Writer

	Logger *slog.Logger
}

// ExecLauncher запускает воркеров отдельными процессами.
//
// Каждый процесс получает --run-id и --worker-id, потребляет очередь
// run'а в RabbitMQ и по завершении печатает в stdout JSON-отчёт.
type ExecLauncher struct {
	cfg ExecConfig
}

// NewExecLauncher создаёт ExecLauncher.
func NewExecLauncher(cfg ExecConfig) *ExecLauncher {
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &ExecLauncher{cfg: cfg}
}

// Open объявляет очередь run'а в брокере.
func (l *ExecLauncher) Open(_ context.Context, runID uuid.UUID, _ int) (queue.Queue, error) {
	if l.cfg.Conn == nil {
		return nil, ErrNotOpened
	}
	if err := mq.SetupTopology(l.cfg.Conn); err != nil {
		return nil, err
	}
	if _, err := mq.DeclareRunQueue(l.cfg.Conn, runID); err != nil {
		return nil, err
	}
	return mq.NewRunQueue(l.cfg.Conn, runID, l.cfg.Logger), nil
}

// Launch запускает процесс воркера.
func (l *ExecLauncher) Launch(ctx context.Context, runID uuid.UUID, id int) (Wait, error) {
	if len(l.cfg.Command) == 0 {
		return nil, errors.New("empty worker command")
	}

	args := append([]string{}, l.cfg.Command[1:]...)
	args = append(args, "--run-id", runID.String(), "--worker-id", strconv.Itoa(id))
	args = append(args, l.cfg.Args...)

	cmd := exec.CommandContext(ctx, l.cfg.Command[0], args...)
	cmd.Env = append(os.Environ(), l.cfg.Env...)
	cmd.Stderr = l.cfg.Stderr

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	l.cfg.Logger.Debug("worker process started", "worker_id", id, "pid", cmd.Process.Pid)

	return func() (*worker.Report, error) {
		waitErr := cmd.Wait()

		report, err := DecodeReport(&stdout)
		if err != nil {
			return &worker.Report{WorkerID: id}, errors.Join(waitErr, err)
		}

		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) && exitErr.ExitCode() == ExitCodeTasksFailed {
			return report, nil
		}
		return report, waitErr
	}, nil
}

// Close удаляет очередь run'а.
func (l *ExecLauncher) Close(_ context.Context, runID uuid.UUID) error {
	if l.cfg.Conn == nil {
		return nil
	}
	return mq.DeleteRunQueue(l.cfg.Conn, runID)
}

// EncodeReport пишет отчёт воркера одной JSON-строкой.
func EncodeReport(w io.Writer, report *worker.Report) error {
	return json.NewEncoder(w).Encode(report)
}

// DecodeReport читает отчёт, записанный EncodeReport.
func DecodeReport(r io.Reader) (*worker.Report, error) {
	var report worker.Report
	if err := json.NewDecoder(r).Decode(&report); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReport, err)
	}
	return &report, nil
}
