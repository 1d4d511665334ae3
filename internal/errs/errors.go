// Package errs 定义贯穿整条流水线的错误分类。
// 错误一律向上抛给调用方，流水线内部不吞错、不重试。
package errs

import (
	"errors"
	"fmt"
)

// ConfigError 启动期配置缺失或非法，任何阶段运行之前即终止进程。
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error [%s]: %s", e.Field, e.Reason)
}

// NewConfig 构造配置错误
func NewConfig(field, reason string) *ConfigError {
	return &ConfigError{Field: field, Reason: reason}
}

// ValidationError 模型输出无法解析或不满足边界 Schema，本次运行失败且不重试。
// Raw 保留模型原始文本，便于排查。
type ValidationError struct {
	Stage  string
	Detail string
	Raw    string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("validation error [%s]: %s: %v", e.Stage, e.Detail, e.Err)
	}
	return fmt.Sprintf("validation error [%s]: %s", e.Stage, e.Detail)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NewValidation 构造校验错误
func NewValidation(stage, detail string) *ValidationError {
	return &ValidationError{Stage: stage, Detail: detail}
}

// NewValidationWrap 构造携带底层错误与原始文本的校验错误
func NewValidationWrap(stage, detail, raw string, err error) *ValidationError {
	return &ValidationError{Stage: stage, Detail: detail, Raw: raw, Err: err}
}

// UpstreamError 外部服务（LLM / Webhook）的网络、鉴权、限流失败。
// 原始错误原样包裹，诊断信息不丢失。
type UpstreamError struct {
	Service string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error [%s]: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// NewUpstream 构造上游错误
func NewUpstream(service string, err error) *UpstreamError {
	return &UpstreamError{Service: service, Err: err}
}

// SuspendedError 流水线在未到达终态的情况下结束，属于不可预期的控制流状态。
// 与基础设施错误区分开，单独成类。
type SuspendedError struct {
	State string
}

func (e *SuspendedError) Error() string {
	return fmt.Sprintf("pipeline suspended in non-terminal state [%s]", e.State)
}

// NewSuspended 构造挂起错误
func NewSuspended(state string) *SuspendedError {
	return &SuspendedError{State: state}
}

// IsValidation 判断错误链上是否存在校验错误
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsUpstream 判断错误链上是否存在上游错误
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
