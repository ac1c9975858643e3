package camunda

import (
	"testing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/stretchr/testify/assert"

	"github.com/janhavi-28/SEO-Agent/internal/common/logger"
	"github.com/janhavi-28/SEO-Agent/internal/common/observability"
)

// stubJobClient hands out nil commands; handlers under test only request them.
type stubJobClient struct{}

func (stubJobClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 { return nil }
func (stubJobClient) NewFailJobCommand() commands.FailJobCommandStep1         { return nil }
func (stubJobClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1   { return nil }

type handlerFunc func(client worker.JobClient, job entities.Job)

func (f handlerFunc) Handle(client worker.JobClient, job entities.Job) { f(client, job) }

func TestRunJob_ReportsOutcome(t *testing.T) {
	tests := []struct {
		name    string
		handle  handlerFunc
		outcome string
	}{
		{
			name:    "completed",
			handle:  func(c worker.JobClient, _ entities.Job) { c.NewCompleteJobCommand() },
			outcome: JobOutcomeCompleted,
		},
		{
			name:    "failed with retries",
			handle:  func(c worker.JobClient, _ entities.Job) { c.NewFailJobCommand() },
			outcome: JobOutcomeFailed,
		},
		{
			name:    "bpmn error",
			handle:  func(c worker.JobClient, _ entities.Job) { c.NewThrowErrorCommand() },
			outcome: JobOutcomeBPMNError,
		},
		{
			name:    "no command issued",
			handle:  func(worker.JobClient, entities.Job) {},
			outcome: JobOutcomeNone,
		},
	}

	obs := observability.New(observability.Config{ServiceName: "seo-agent-test"}, logger.NewTestLogger(t))
	defer obs.Shutdown()

	job := entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 42, ProcessInstanceKey: 7}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runJob("marketing-campaign-build", tt.handle, obs, stubJobClient{}, job)
			assert.Equal(t, tt.outcome, got)
		})
	}
}
