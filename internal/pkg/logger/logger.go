package logger

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Logger 是全局的结构化日志实例。
// 各服务在启动时调用 Init 注入服务名，业务代码统一通过 Ctx(ctx) 获取。
var Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Init 初始化全局日志，附加服务名字段。
func Init(serviceName string) {
	Logger = zerolog.New(os.Stderr).With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}

// Ctx 返回一个绑定了当前追踪上下文的日志实例。
// 如果 ctx 中存在有效的 Span，日志会自动携带 trace_id / span_id，
// 便于在日志系统中与 Jaeger 链路相互跳转。
func Ctx(ctx context.Context) *zerolog.Logger {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		l := Logger.With().
			Str("trace_id", sc.TraceID().String()).
			Str("span_id", sc.SpanID().String()).
			Logger()
		return &l
	}
	return &Logger
}
