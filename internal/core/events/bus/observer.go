package bus

import (
	"github.com/zeusync/skyfire/internal/core/observability/interfaces"
	"github.com/zeusync/skyfire/internal/core/observability/log"
)

// TelemetryObserver forwards stream activity to a metrics recorder and warns
// when a reader lost events.
type TelemetryObserver struct {
	recorder interfaces.Recorder
	logger   log.Log
}

func NewTelemetryObserver(recorder interfaces.Recorder, logger log.Log) *TelemetryObserver {
	return &TelemetryObserver{recorder: recorder, logger: logger}
}

func (o *TelemetryObserver) OnPublish(stream string, n int) {
	o.recorder.EventsPublished(stream, n)
}

func (o *TelemetryObserver) OnMissed(stream, reader string, n int) {
	o.recorder.EventsMissed(stream, reader, n)
	o.logger.Warn("reader missed events",
		log.String("stream", stream),
		log.String("reader", reader),
		log.Int("missed", n),
	)
}
