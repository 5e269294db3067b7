// 自定义日志格式化器
package logger

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// FormatTimestamp 格式化时间戳为统一的毫秒精度格式
// 返回格式："2006-01-02 15:04:05.000"
func FormatTimestamp(t time.Time) string {
	// 除了日志管理器之外的其他模块使用的时间戳格式
	return t.Format("2006-01-02 15:04:05.000")
}

// NowFormatted 返回当前时间的格式化字符串
// 返回格式："2006-01-02 15:04:05.000"
func NowFormatted() string {
	return FormatTimestamp(time.Now())
}

// LogType 日志类型枚举
type LogType string

const (
	// DiscoveryLog 发现日志 - 记录广播发现设备的过程
	DiscoveryLog LogType = "discovery"
	// SessionLog 会话日志 - 记录设备认证握手
	SessionLog LogType = "session"
	// CommandLog 命令日志 - 记录设备命令下发
	CommandLog LogType = "command"
	// ErrorLog 错误日志 - 记录系统错误和异常
	ErrorLog LogType = "error"
	// SystemLog 系统日志 - 记录系统运行状态
	SystemLog LogType = "system"
)

// DiscoveryLogEntry 发现日志条目结构
type DiscoveryLogEntry struct {
	Timestamp     time.Time              `json:"timestamp"`      // 发现时间
	BroadcastAddr string                 `json:"broadcast_addr"` // 广播地址
	DevicesFound  int                    `json:"devices_found"`  // 发现的设备数量
	Duration      int64                  `json:"duration"`       // 发现耗时(毫秒)
	ExtraFields   map[string]interface{} `json:"extra_fields"`   // 额外字段
}

// SessionLogEntry 会话日志条目结构
type SessionLogEntry struct {
	Timestamp   time.Time              `json:"timestamp"`    // 握手时间
	DeviceID    string                 `json:"device_id"`    // 设备MAC/IP标识
	DeviceType  uint16                 `json:"device_type"`  // 设备类型代码
	Result      string                 `json:"result"`       // 握手结果（success, failed）
	Message     string                 `json:"message"`      // 详细信息
	ExtraFields map[string]interface{} `json:"extra_fields"` // 额外字段
}

// CommandLogEntry 命令日志条目结构
type CommandLogEntry struct {
	Timestamp   time.Time              `json:"timestamp"`    // 命令时间
	DeviceID    string                 `json:"device_id"`    // 设备标识
	Command     uint32                 `json:"command"`      // 命令码
	Status      string                 `json:"status"`       // 执行状态（ok, timeout, error）
	Duration    int64                  `json:"duration"`     // 命令耗时(毫秒)
	ExtraFields map[string]interface{} `json:"extra_fields"` // 额外字段
}

// ErrorLogEntry 错误日志条目结构
type ErrorLogEntry struct {
	Timestamp   time.Time              `json:"timestamp"`    // 错误时间
	Level       string                 `json:"level"`        // 错误级别
	Error       string                 `json:"error"`        // 错误信息
	DeviceID    string                 `json:"device_id"`    // 设备标识
	ExtraFields map[string]interface{} `json:"extra_fields"` // 额外字段
}

// SystemLogEntry 系统日志条目结构
type SystemLogEntry struct {
	Timestamp   time.Time              `json:"timestamp"`    // 时间
	Component   string                 `json:"component"`    // 系统组件（transport, codec, cli等）
	Event       string                 `json:"event"`        // 事件类型（startup, shutdown, error等）
	Message     string                 `json:"message"`      // 详细信息
	Level       string                 `json:"level"`        // 日志级别
	ExtraFields map[string]interface{} `json:"extra_fields"` // 额外字段
}

// LogDiscovery 记录一轮广播发现的结果
func LogDiscovery(broadcastAddr string, devicesFound int, duration time.Duration, extraFields map[string]interface{}) {
	if LoggerInstance == nil {
		return
	}

	fields := logrus.Fields{
		"type":           DiscoveryLog,
		"broadcast_addr": broadcastAddr,
		"devices_found":  devicesFound,
		"duration":       duration.Milliseconds(),
	}

	for k, v := range extraFields {
		fields[k] = v
	}

	LoggerInstance.logger.WithFields(fields).Infof("Discovery found %d device(s) on %s", devicesFound, broadcastAddr)
}

// LogSessionAuth 记录设备认证握手的结果
func LogSessionAuth(deviceID string, deviceType uint16, result, message string, extraFields map[string]interface{}) {
	if LoggerInstance == nil {
		return
	}

	fields := logrus.Fields{
		"type":        SessionLog,
		"device_id":   deviceID,
		"device_type": deviceType,
		"result":      result,
		"message":     message,
	}

	for k, v := range extraFields {
		fields[k] = v
	}

	if result == "success" {
		LoggerInstance.logger.WithFields(fields).Infof("Session established with %s", deviceID)
	} else {
		LoggerInstance.logger.WithFields(fields).Warnf("Session auth failed with %s: %s", deviceID, message)
	}
}

// LogCommand 记录一次设备命令下发
func LogCommand(deviceID string, command uint32, status string, duration time.Duration, extraFields map[string]interface{}) {
	if LoggerInstance == nil {
		return
	}

	fields := logrus.Fields{
		"type":      CommandLog,
		"device_id": deviceID,
		"command":   command,
		"status":    status,
		"duration":  duration.Milliseconds(),
	}

	for k, v := range extraFields {
		fields[k] = v
	}

	switch status {
	case "ok":
		LoggerInstance.logger.WithFields(fields).Debugf("Command 0x%x to %s succeeded", command, deviceID)
	case "timeout":
		LoggerInstance.logger.WithFields(fields).Warnf("Command 0x%x to %s timed out", command, deviceID)
	default:
		LoggerInstance.logger.WithFields(fields).Errorf("Command 0x%x to %s failed: %s", command, deviceID, status)
	}
}

// LogError 记录错误日志
// 用于记录系统错误、异常和协议错误
func LogError(err error, deviceID string, extraFields map[string]interface{}) {
	if LoggerInstance == nil {
		return
	}

	if err == nil {
		return
	}

	fields := logrus.Fields{
		"type":      ErrorLog,
		"level":     "error",
		"error":     err.Error(),
		"device_id": deviceID,
	}

	for k, v := range extraFields {
		fields[k] = v
	}

	LoggerInstance.logger.WithFields(fields).Errorf("Error: %s", err.Error())
}

// LogInfo 记录信息日志
// 用于记录一般性信息、成功操作和状态更新
func LogInfo(message string, extraFields map[string]interface{}) {
	if LoggerInstance == nil {
		return
	}

	if message == "" {
		return
	}

	fields := logrus.Fields{
		"type":    "info",
		"message": message,
	}

	for k, v := range extraFields {
		fields[k] = v
	}

	LoggerInstance.logger.WithFields(fields).Info(message)
}

// LogWarn 记录警告日志
func LogWarn(message string, extraFields map[string]interface{}) {
	if LoggerInstance == nil {
		return
	}

	if message == "" {
		return
	}

	fields := logrus.Fields{
		"type":    "warn",
		"message": message,
	}

	for k, v := range extraFields {
		fields[k] = v
	}

	LoggerInstance.logger.WithFields(fields).Warn(message)
}

// LogSystemEvent 记录系统事件日志
// 用于记录启动、关闭、组件状态变化等系统级事件
func LogSystemEvent(component, event, message string, level LogLevel, extraFields map[string]interface{}) {
	if LoggerInstance == nil {
		return
	}

	logrusLevel := toLogrusLevel(level)

	fields := logrus.Fields{
		"type":      SystemLog,
		"component": component,
		"event":     event,
		"message":   message,
		"level":     logrusLevel.String(),
	}

	for k, v := range extraFields {
		fields[k] = v
	}

	switch logrusLevel {
	case logrus.DebugLevel:
		LoggerInstance.logger.WithFields(fields).Debug(fmt.Sprintf("System event: %s - %s", component, event))
	case logrus.InfoLevel:
		LoggerInstance.logger.WithFields(fields).Info(fmt.Sprintf("System event: %s - %s", component, event))
	case logrus.WarnLevel:
		LoggerInstance.logger.WithFields(fields).Warn(fmt.Sprintf("System event: %s - %s", component, event))
	case logrus.ErrorLevel:
		LoggerInstance.logger.WithFields(fields).Error(fmt.Sprintf("System event: %s - %s", component, event))
	case logrus.FatalLevel:
		LoggerInstance.logger.WithFields(fields).Fatal(fmt.Sprintf("System event: %s - %s", component, event))
	default:
		LoggerInstance.logger.WithFields(fields).Info(fmt.Sprintf("System event: %s - %s", component, event))
	}
}

// LogLevel 日志级别类型，封装logrus.Level避免调用方直接依赖logrus
type LogLevel int

const (
	// DebugLevel 调试级别
	DebugLevel LogLevel = iota
	// InfoLevel 信息级别
	InfoLevel
	// WarnLevel 警告级别
	WarnLevel
	// ErrorLevel 错误级别
	ErrorLevel
	// FatalLevel 致命错误级别
	FatalLevel
)

// toLogrusLevel 将封装的LogLevel转换为logrus.Level
// 这是内部函数，外部不应该直接使用logrus
func toLogrusLevel(level LogLevel) logrus.Level {
	switch level {
	case DebugLevel:
		return logrus.DebugLevel
	case InfoLevel:
		return logrus.InfoLevel
	case WarnLevel:
		return logrus.WarnLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	case FatalLevel:
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}
