package template

type (
	// Event is one entry of a function's `events` list. Exactly one field is set.
	Event struct {
		S3       *S3Event     `yaml:"s3,omitempty" json:"s3,omitempty"`
		Stream   *StreamEvent `yaml:"stream,omitempty" json:"stream,omitempty"`
		HTTP     *HTTPEvent   `yaml:"http,omitempty" json:"http,omitempty"`
		Schedule string       `yaml:"schedule,omitempty" json:"schedule,omitempty"`
		SNS      string       `yaml:"sns,omitempty" json:"sns,omitempty"`
	}

	S3Event struct {
		Bucket string `yaml:"bucket" json:"bucket"`
		Event  string `yaml:"event" json:"event"`
	}

	StreamEvent struct {
		Type string `yaml:"type" json:"type"`
		Arn  any    `yaml:"arn" json:"arn"`
	}

	HTTPEvent struct {
		Path   string `yaml:"path" json:"path"`
		Method string `yaml:"method" json:"method"`
	}

	// ResourceEvent is an event source declared inline on a composite resource's `Events` map.
	ResourceEvent struct {
		Type       string     `yaml:"Type" json:"Type"`
		Properties Properties `yaml:"Properties" json:"Properties"`
	}
)
