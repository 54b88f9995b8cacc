package postgres

import (
	"context"
	"fmt"
	"net"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"

	"github.com/jhoicas/pos-backoffice/pkg/config"
	"github.com/jhoicas/pos-backoffice/pkg/logger"
)

// NewPool abre el pool, registra el codec NUMERIC -> decimal y verifica la conexión con un ping.
func NewPool(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	if cfg.ForceIPv4 {
		poolConfig.ConnConfig.DialFunc = dialIPv4
	}
	if lvl, err := tracelog.LogLevelFromString(cfg.LogLevel); err == nil && lvl != tracelog.LogLevelNone {
		poolConfig.ConnConfig.Tracer = &tracelog.TraceLog{Logger: queryLogger(log.Component("sql")), LogLevel: lvl}
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	if poolConfig.MaxConns <= 0 {
		poolConfig.MaxConns = 25
	}
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	// Montos de ventas, pagos y cajas
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// dialIPv4 conecta por tcp4 cuando el host tiene registro A; si no, hace el dial normal.
// Algunos contenedores sin IPv6 reciben solo AAAA del proveedor gestionado.
func dialIPv4(ctx context.Context, network, addr string) (net.Conn, error) {
	var d net.Dialer
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	ips, err := net.DefaultResolver.LookupIP(ctx, "ip4", host)
	if err != nil || len(ips) == 0 {
		return d.DialContext(ctx, network, addr)
	}
	return d.DialContext(ctx, "tcp4", net.JoinHostPort(ips[0].String(), port))
}

// queryLogger adapta el tracer de pgx al logger de la aplicación.
func queryLogger(log *logger.Logger) tracelog.Logger {
	return tracelog.LoggerFunc(func(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
		ev := log.Debug()
		switch level {
		case tracelog.LogLevelError:
			ev = log.Error()
		case tracelog.LogLevelWarn:
			ev = log.Warn()
		case tracelog.LogLevelInfo:
			ev = log.Info()
		case tracelog.LogLevelTrace:
			ev = log.Trace()
		}
		ev.Fields(data).Msg(msg)
	})
}
