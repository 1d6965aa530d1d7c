package test

import (
	"context"
	"net/http"

	"github.com/liftlog-app/liftlog/internal/sessions"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// no finished sessions yet, so every set starts empty and incomplete
func (s *IntegrationTestSuite) TestSessions_StartFromTemplate_NoHistory() {
	ctx := context.Background()
	s.clearAllData(ctx)

	template := s.createTemplate(ctx, "Leg Day")
	templateID := template.ID.String()
	s.addTemplateExercise(ctx, templateID, "Back Squat", 3)
	s.addTemplateExercise(ctx, templateID, "Walking Lunge", 3)

	session := s.startSessionFromTemplate(ctx, templateID)
	assert.Equal(s.T(), "Leg Day", session.Name)
	require.NotNil(s.T(), session.TemplateID)
	assert.Equal(s.T(), template.ID, *session.TemplateID)
	assert.Nil(s.T(), session.DurationSeconds)

	require.Len(s.T(), session.Exercises, 2)
	assert.Equal(s.T(), "Back Squat", session.Exercises[0].Name)
	assert.Equal(s.T(), "Walking Lunge", session.Exercises[1].Name)
	for _, exercise := range session.Exercises {
		require.Len(s.T(), exercise.Sets, 3)
		for i, set := range exercise.Sets {
			assert.Equal(s.T(), i, set.SetIndex)
			assert.Zero(s.T(), set.Reps)
			assert.Zero(s.T(), set.Weight)
			assert.False(s.T(), set.IsComplete)
		}
	}
}

// recorded sets of the previous finished session seed the matching sets of
// the next one, position by position
func (s *IntegrationTestSuite) TestSessions_CarryForward() {
	ctx := context.Background()
	s.clearAllData(ctx)

	template := s.createTemplate(ctx, "Leg Day")
	templateID := template.ID.String()
	s.addTemplateExercise(ctx, templateID, "Back Squat", 3)

	first := s.startSessionFromTemplate(ctx, templateID)
	require.Len(s.T(), first.Exercises, 1)
	firstSets := first.Exercises[0].Sets
	require.Len(s.T(), firstSets, 3)

	s.updateSet(ctx, firstSets[0].ID.String(), 8, 100, true)
	s.updateSet(ctx, firstSets[1].ID.String(), 8, 100, true)
	// third set never recorded
	s.finishSession(ctx, first.ID.String())

	second := s.startSessionFromTemplate(ctx, templateID)
	require.Len(s.T(), second.Exercises, 1)
	secondSets := second.Exercises[0].Sets
	require.Len(s.T(), secondSets, 3)

	assert.Equal(s.T(), 8, secondSets[0].Reps)
	assert.Equal(s.T(), float64(100), secondSets[0].Weight)
	assert.True(s.T(), secondSets[0].IsComplete)
	assert.Equal(s.T(), 8, secondSets[1].Reps)
	assert.True(s.T(), secondSets[1].IsComplete)
	assert.Zero(s.T(), secondSets[2].Reps)
	assert.Zero(s.T(), secondSets[2].Weight)
	assert.False(s.T(), secondSets[2].IsComplete)
}

// extra sets added by hand during a session win over the template target
// set count the next time around
func (s *IntegrationTestSuite) TestSessions_CarryForward_MoreSetsThanTarget() {
	ctx := context.Background()
	s.clearAllData(ctx)

	template := s.createTemplate(ctx, "Push Day")
	templateID := template.ID.String()
	s.addTemplateExercise(ctx, templateID, "Bench Press", 3)

	first := s.startSessionFromTemplate(ctx, templateID)
	exerciseID := first.Exercises[0].ID.String()

	var setFour, setFive sessions.SessionSet
	s.doJSONRequest(
		ctx,
		"POST", serverEndpoint+"/sessions/exercise/"+exerciseID+"/set",
		nil,
		http.StatusCreated,
		&setFour,
	)
	s.doJSONRequest(
		ctx,
		"POST", serverEndpoint+"/sessions/exercise/"+exerciseID+"/set",
		nil,
		http.StatusCreated,
		&setFive,
	)
	assert.Equal(s.T(), 3, setFour.SetIndex)
	assert.Equal(s.T(), 4, setFive.SetIndex)

	refreshed := s.getSession(ctx, first.ID.String())
	for _, set := range refreshed.Exercises[0].Sets {
		s.updateSet(ctx, set.ID.String(), 10, 60, true)
	}
	s.finishSession(ctx, first.ID.String())

	second := s.startSessionFromTemplate(ctx, templateID)
	require.Len(s.T(), second.Exercises, 1)
	require.Len(s.T(), second.Exercises[0].Sets, 5)
	for _, set := range second.Exercises[0].Sets {
		assert.Equal(s.T(), 10, set.Reps)
		assert.Equal(s.T(), float64(60), set.Weight)
		assert.True(s.T(), set.IsComplete)
	}
}

// a finished session where a set was never recorded does not shadow older
// recorded data, seeding walks further back through the history window
func (s *IntegrationTestSuite) TestSessions_CarryForward_SkipsUnrecordedSets() {
	ctx := context.Background()
	s.clearAllData(ctx)

	template := s.createTemplate(ctx, "Pull Day")
	templateID := template.ID.String()
	s.addTemplateExercise(ctx, templateID, "Deadlift", 2)

	first := s.startSessionFromTemplate(ctx, templateID)
	for _, set := range first.Exercises[0].Sets {
		s.updateSet(ctx, set.ID.String(), 5, 140, true)
	}
	s.finishSession(ctx, first.ID.String())

	// second session finished without recording anything
	second := s.startSessionFromTemplate(ctx, templateID)
	// seeded values wiped, the sets count as never recorded again
	for _, set := range second.Exercises[0].Sets {
		s.updateSet(ctx, set.ID.String(), 0, 0, false)
	}
	s.finishSession(ctx, second.ID.String())

	third := s.startSessionFromTemplate(ctx, templateID)
	require.Len(s.T(), third.Exercises, 1)
	for _, set := range third.Exercises[0].Sets {
		assert.Equal(s.T(), 5, set.Reps)
		assert.Equal(s.T(), float64(140), set.Weight)
		assert.True(s.T(), set.IsComplete)
	}
}

func (s *IntegrationTestSuite) TestSessions_StartFromMissingTemplate() {
	ctx := context.Background()
	s.clearAllData(ctx)

	s.doRequest(
		ctx,
		"POST", serverEndpoint+"/sessions/start/template/"+uuid.NewString(),
		nil,
		http.StatusConflict,
	)
}

// blank session: add an exercise by hand, cancel, and verify the whole
// graph is gone from the db
func (s *IntegrationTestSuite) TestSessions_BlankSessionLifecycle() {
	ctx := context.Background()
	s.clearAllData(ctx)

	var session sessions.Session
	s.doJSONRequest(
		ctx,
		"POST", serverEndpoint+"/sessions/start/blank",
		nil,
		http.StatusCreated,
		&session,
	)
	assert.Nil(s.T(), session.TemplateID)
	assert.Empty(s.T(), session.Exercises)

	var exercise sessions.SessionExercise
	s.doJSONRequest(
		ctx,
		"POST", serverEndpoint+"/sessions/"+session.ID.String()+"/exercise",
		sessions.AddSessionExerciseRequest{Name: "Overhead Press"},
		http.StatusCreated,
		&exercise,
	)
	assert.Equal(s.T(), 0, exercise.Order)
	assert.Len(s.T(), exercise.Sets, sessions.DefaultSetCount)

	require.Equal(s.T(), 1, s.countRows("session_exercise"))
	require.Equal(s.T(), sessions.DefaultSetCount, s.countRows("session_set"))

	s.doRequest(
		ctx,
		"DELETE", serverEndpoint+"/sessions/"+session.ID.String(),
		nil,
		http.StatusOK,
	)
	s.doRequest(
		ctx,
		"GET", serverEndpoint+"/sessions/"+session.ID.String(),
		nil,
		http.StatusNotFound,
	)

	assert.Equal(s.T(), 0, s.countRows("workout_session"))
	assert.Equal(s.T(), 0, s.countRows("session_exercise"))
	assert.Equal(s.T(), 0, s.countRows("session_set"))
}

func (s *IntegrationTestSuite) TestSessions_FinishTwice() {
	ctx := context.Background()
	s.clearAllData(ctx)

	template := s.createTemplate(ctx, "Quick Workout")
	s.addTemplateExercise(ctx, template.ID.String(), "Back Squat", 1)
	session := s.startSessionFromTemplate(ctx, template.ID.String())

	finished := s.finishSession(ctx, session.ID.String())
	assert.Equal(s.T(), session.ID.String(), finished.ID)

	s.doRequest(
		ctx,
		"POST", serverEndpoint+"/sessions/"+session.ID.String()+"/finish",
		nil,
		http.StatusConflict,
	)
}

func (s *IntegrationTestSuite) TestSessions_ListAndProgress() {
	ctx := context.Background()
	s.clearAllData(ctx)

	template := s.createTemplate(ctx, "Leg Day")
	templateID := template.ID.String()
	s.addTemplateExercise(ctx, templateID, "Back Squat", 2)

	weights := []float64{100, 110}
	for _, weight := range weights {
		session := s.startSessionFromTemplate(ctx, templateID)
		for _, set := range session.Exercises[0].Sets {
			s.updateSet(ctx, set.ID.String(), 5, weight, true)
		}
		s.finishSession(ctx, session.ID.String())
	}

	var listResp sessions.ListSessionsResponse
	s.doJSONRequest(
		ctx,
		"GET", serverEndpoint+"/sessions?limit=10",
		nil,
		http.StatusOK,
		&listResp,
	)
	assert.Equal(s.T(), 2, listResp.Total)

	var progressResp sessions.ExerciseProgressResponse
	s.doJSONRequest(
		ctx,
		"GET", serverEndpoint+"/sessions/progress?exercise=Back+Squat",
		nil,
		http.StatusOK,
		&progressResp,
	)
	assert.Equal(s.T(), "Back Squat", progressResp.Exercise)
	// both sessions finished today, the chart has one point per day with
	// the heaviest recorded weight
	require.Len(s.T(), progressResp.Points, 1)
	assert.Equal(s.T(), float64(110), progressResp.Points[0].MaxWeight)
}
