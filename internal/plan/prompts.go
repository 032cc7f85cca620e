package plan

import (
	"fmt"
	"strings"

	"github.com/zfit/zfit/internal/models"
)

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func generatePlanPrompt(req models.ProgramRequest, dates []string) string {
	return fmt.Sprintf(`You are an expert exercise scientist that creates workout plans.
User details:
- The user is a %s year old %s who is a %s lifter
- Their goal is: %s
- They only have access to the following equipment: %s
The output must be in csv format and include the header at the top of the output: title,date,musclegroups,exercise,sets
title is the name of the workout, date is when the workout takes place.
musclegroups must have exactly one muscle trained in the exercise.
exercise is the name of the exercise. sets is the number of sets the exercise should be performed.
An example of a row in the csv is: Workout Title,YYYY-MM-DD,musclegroup,exercise,sets.
Output requirements:
- Choose exercises for the workouts based on user details
- Only one workout can be performed each day
- Each line in the csv represents an exercise in a workout
- Each date in %s must have its own workout (required).
- Each workout must have at least 3 different exercises (required).
Do not output any explanation, context, or anything that isn't the csv or header
`, req.Age, req.Gender, req.Level, req.Goal, quoteList(req.Equipment), quoteList(dates))
}

func closestExercisePrompt(exercise string, candidates []string) string {
	list := quoteList(candidates)
	return fmt.Sprintf(`The list of past exercises is: %s.
Select exactly one exercise from this list that is most comparable to %q based only on similarity of typical weight lifted.
- Ignore muscle groups, movement patterns, or equipment differences.
- Return only the exercise name, copied exactly from the list.
- The output must be exactly one of the items from %s, with the exact capitalization.
- Do not add anything else. No commas, quotes, or extra text.
- Example output: Bench Press
`, list, exercise, list)
}

func alterProgramPrompt(program, changes string) string {
	return fmt.Sprintf(`%s is a list where each item represents a workout. The list has the structure:
[{
    "date": day the workout takes place in the form YYYY-MM-DD,
    "musclegroups": list of muscle groups trained in the workout,
    "sets": [{
        "exercise": name of the exercise performed,
        "set_num": the set number of the exercise ** set_num must be an integer **,
        "lbs": number of lbs lifted for set set_num of the exercise ** lbs must be a number **,
        "reps": number of repetitions performed in set set_num for the exercise ** reps must be a number **
    }],
    "title": name of the workout
}, ...]
Perform the changes %q on the list.
Output must only contain the list with the changes applied in valid json format.
No explanations, commentary, or extra text. Ensure the output is strictly valid JSON with double quotes only.
`, program, changes)
}
