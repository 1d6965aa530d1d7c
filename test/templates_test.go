package test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/liftlog-app/liftlog/internal/templates"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestTemplates_CreateAndList() {
	ctx := context.Background()
	s.clearAllData(ctx)

	nameA := gofakeit.AppName()
	nameB := gofakeit.AppName()
	createdA := s.createTemplate(ctx, nameA)
	createdB := s.createTemplate(ctx, nameB)
	assert.Equal(s.T(), nameA, createdA.Name)
	assert.NotEqual(s.T(), createdA.ID, createdB.ID)

	s.addTemplateExercise(ctx, createdA.ID.String(), "Back Squat", 3)
	s.addTemplateExercise(ctx, createdA.ID.String(), "Bench Press", 4)

	var listResp templates.ListTemplatesResponse
	s.doJSONRequest(
		ctx,
		"GET", serverEndpoint+"/templates",
		nil,
		http.StatusOK,
		&listResp,
	)
	require.Equal(s.T(), 2, listResp.Total)

	countByName := map[string]int{}
	for _, template := range listResp.Templates {
		countByName[template.Name] = template.ExerciseCount
	}
	assert.Equal(s.T(), 2, countByName[nameA])
	assert.Equal(s.T(), 0, countByName[nameB])
}

func (s *IntegrationTestSuite) TestTemplates_RenameAndDelete() {
	ctx := context.Background()
	s.clearAllData(ctx)

	created := s.createTemplate(ctx, "Push Day")
	templateID := created.ID.String()

	s.doRequest(
		ctx,
		"PUT", serverEndpoint+"/templates/"+templateID,
		templates.RenameTemplateRequest{Name: "Pull Day"},
		http.StatusOK,
	)

	renamed := s.getTemplate(ctx, templateID)
	assert.Equal(s.T(), "Pull Day", renamed.Name)

	s.doRequest(
		ctx,
		"DELETE", serverEndpoint+"/templates/"+templateID,
		nil,
		http.StatusOK,
	)
	s.doRequest(
		ctx,
		"GET", serverEndpoint+"/templates/"+templateID,
		nil,
		http.StatusNotFound,
	)
}

// order of template exercises must stay contiguous and zero based through
// adds, moves and removals
func (s *IntegrationTestSuite) TestTemplates_ExerciseOrdering() {
	ctx := context.Background()
	s.clearAllData(ctx)

	created := s.createTemplate(ctx, "Leg Day")
	templateID := created.ID.String()

	squat := s.addTemplateExercise(ctx, templateID, "Back Squat", 3)
	lunge := s.addTemplateExercise(ctx, templateID, "Walking Lunge", 3)
	press := s.addTemplateExercise(ctx, templateID, "Leg Press", 4)
	assert.Equal(s.T(), 0, squat.Order)
	assert.Equal(s.T(), 1, lunge.Order)
	assert.Equal(s.T(), 2, press.Order)

	// move leg press to the front
	s.doRequest(
		ctx,
		"PUT", serverEndpoint+"/templates/"+templateID+"/exercise/move",
		templates.MoveExerciseRequest{From: 2, To: 0},
		http.StatusOK,
	)

	template := s.getTemplate(ctx, templateID)
	require.Len(s.T(), template.Exercises, 3)
	assert.Equal(s.T(), "Leg Press", template.Exercises[0].Name)
	assert.Equal(s.T(), "Back Squat", template.Exercises[1].Name)
	assert.Equal(s.T(), "Walking Lunge", template.Exercises[2].Name)
	for i, exercise := range template.Exercises {
		assert.Equal(s.T(), i, exercise.Order)
	}

	// removing the middle one renumbers the rest
	s.doRequest(
		ctx,
		"DELETE", serverEndpoint+"/templates/"+templateID+"/exercise/"+squat.ID.String(),
		nil,
		http.StatusOK,
	)

	template = s.getTemplate(ctx, templateID)
	require.Len(s.T(), template.Exercises, 2)
	assert.Equal(s.T(), "Leg Press", template.Exercises[0].Name)
	assert.Equal(s.T(), 0, template.Exercises[0].Order)
	assert.Equal(s.T(), "Walking Lunge", template.Exercises[1].Name)
	assert.Equal(s.T(), 1, template.Exercises[1].Order)
}

func (s *IntegrationTestSuite) TestTemplates_UpdateExercise() {
	ctx := context.Background()
	s.clearAllData(ctx)

	created := s.createTemplate(ctx, "Upper Body")
	templateID := created.ID.String()
	row := s.addTemplateExercise(ctx, templateID, "Barbell Row", 3)

	s.doRequest(
		ctx,
		"PUT", fmt.Sprintf("%s/templates/%s/exercise/%s", serverEndpoint, templateID, row.ID),
		templates.UpdateExerciseRequest{Name: "Pendlay Row", TargetSetCount: 5},
		http.StatusOK,
	)

	template := s.getTemplate(ctx, templateID)
	require.Len(s.T(), template.Exercises, 1)
	assert.Equal(s.T(), "Pendlay Row", template.Exercises[0].Name)
	assert.Equal(s.T(), 5, template.Exercises[0].TargetSetCount)
}

// warmup step durations get clamped to the allowed range on write
func (s *IntegrationTestSuite) TestTemplates_Warmups() {
	ctx := context.Background()
	s.clearAllData(ctx)

	created := s.createTemplate(ctx, "Leg Day")
	templateID := created.ID.String()

	s.doRequest(
		ctx,
		"PUT", serverEndpoint+"/templates/"+templateID+"/warmups",
		templates.WarmupStepsResponse{Steps: []templates.WarmupStep{
			{Name: "Jumping Jacks", DurationSeconds: 30},
			{Name: "Air Squats", DurationSeconds: 2},   // below min, clamps to 5
			{Name: "Treadmill", DurationSeconds: 300},  // above max, clamps to 60
		}},
		http.StatusOK,
	)

	var warmupsResp templates.WarmupStepsResponse
	s.doJSONRequest(
		ctx,
		"GET", serverEndpoint+"/templates/"+templateID+"/warmups",
		nil,
		http.StatusOK,
		&warmupsResp,
	)
	require.Len(s.T(), warmupsResp.Steps, 3)
	assert.Equal(s.T(), 30, warmupsResp.Steps[0].DurationSeconds)
	assert.Equal(s.T(), templates.MinWarmupSeconds, warmupsResp.Steps[1].DurationSeconds)
	assert.Equal(s.T(), templates.MaxWarmupSeconds, warmupsResp.Steps[2].DurationSeconds)

	s.doRequest(
		ctx,
		"DELETE", serverEndpoint+"/templates/"+templateID+"/warmups/1",
		nil,
		http.StatusOK,
	)

	s.doJSONRequest(
		ctx,
		"GET", serverEndpoint+"/templates/"+templateID+"/warmups",
		nil,
		http.StatusOK,
		&warmupsResp,
	)
	require.Len(s.T(), warmupsResp.Steps, 2)
	assert.Equal(s.T(), "Jumping Jacks", warmupsResp.Steps[0].Name)
	assert.Equal(s.T(), "Treadmill", warmupsResp.Steps[1].Name)

	// deleting the template takes the warmup steps with it
	s.doRequest(ctx, "DELETE", serverEndpoint+"/templates/"+templateID, nil, http.StatusOK)
	assert.Equal(s.T(), 0, s.countRows("warmup_step"))
}
