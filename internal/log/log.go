package log

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

type entry struct {
	TS        string         `json:"ts"`
	Level     string         `json:"level"`
	ReqID     string         `json:"req_id,omitempty"`
	IP        string         `json:"ip,omitempty"`
	Method    string         `json:"method,omitempty"`
	Path      string         `json:"path,omitempty"`
	Job       string         `json:"job,omitempty"`
	Action    string         `json:"action,omitempty"`
	Status    int            `json:"status,omitempty"`
	LatencyMs int64          `json:"latency_ms,omitempty"`
	Err       string         `json:"err,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
}

func write(e entry, c *fiber.Ctx, err error) {
	e.TS = time.Now().UTC().Format(time.RFC3339)
	if c != nil {
		e.IP = c.IP()
		e.Method = c.Method()
		e.Path = c.Path()
		e.Status = c.Response().StatusCode()
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			e.ReqID = rid
		}
	}
	if err != nil {
		e.Err = err.Error()
	}
	b, _ := json.Marshal(e)
	log.Println(string(b))
}

// c may be nil outside of a request.
func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(entry{Level: "info", Action: action, Fields: fields}, c, nil)
}

func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(entry{Level: "audit", Action: action, Fields: fields}, c, nil)
}

func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(entry{Level: "warn", Action: action, Fields: fields}, c, nil)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(entry{Level: "error", Action: action, Fields: fields}, c, err)
}

// Job records the outcome of a scheduled job run. A nil err logs at info.
func Job(name, action string, latency time.Duration, err error, fields map[string]any) {
	level := "info"
	if err != nil {
		level = "error"
	}
	write(entry{Level: level, Job: name, Action: action, LatencyMs: latency.Milliseconds(), Fields: fields}, nil, err)
}
