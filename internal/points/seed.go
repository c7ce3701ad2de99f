package points

import "github.com/google/uuid"

// DefaultSnapshot is the starting household dataset installed when the
// snapshot store is empty: two users, four task categories with per-user
// point values, and six rewards. Balances and history start at zero.
func DefaultSnapshot(mode Mode) *Snapshot {
	lara := uuid.New()
	isaac := uuid.New()

	per := func(l, i int) PointSpec {
		return PointSpec{PerUser: map[uuid.UUID]int{lara: l, isaac: i}}
	}

	cat := func(name string, tasks ...Task) Category {
		c := Category{ID: uuid.New(), Name: name, Tasks: tasks}
		for i := range c.Tasks {
			c.Tasks[i].ID = uuid.New()
			c.Tasks[i].CategoryID = c.ID
		}

		return c
	}

	return &Snapshot{
		Mode: mode,
		Users: []User{
			{ID: lara, Name: "Lara", Color: "#FF69B4"},
			{ID: isaac, Name: "Isaac", Color: "#007AFF"},
		},
		Categories: []Category{
			cat("Household Chores",
				Task{Name: "Do the Dishes", Points: per(10, 8)},
				Task{Name: "Do Laundry", Points: per(15, 12)},
				Task{Name: "Vacuum Living Room", Points: per(12, 15)},
				Task{Name: "Clean Bathroom", Points: per(20, 18)},
				Task{Name: "Clean Kitchen", Points: per(18, 20)},
			),
			cat("Personal Goals",
				Task{Name: "Exercise 30 mins", Points: per(25, 30)},
				Task{Name: "Read for 1 hour", Points: per(20, 15)},
				Task{Name: "Meditate 15 mins", Points: per(15, 12)},
				Task{Name: "Drink 8 glasses of water", Points: per(10, 10)},
			),
			cat("Work & Study",
				Task{Name: "Complete Work Project", Points: per(50, 45)},
				Task{Name: "Study for 2 hours", Points: per(30, 35)},
				Task{Name: "Organize Workspace", Points: per(15, 12)},
				Task{Name: "Clear Email Inbox", Points: per(10, 8)},
			),
			cat("Social & Family",
				Task{Name: "Call Family Member", Points: per(15, 18)},
				Task{Name: "Spend Time with Friends", Points: per(20, 22)},
				Task{Name: "Plan Date Night", Points: per(25, 25)},
				Task{Name: "Help a Neighbor", Points: per(30, 28)},
			),
		},
		Rewards: []Reward{
			{ID: uuid.New(), Name: "Favorite Coffee", PointsRequired: 50, Description: "Treat yourself to your favorite coffee"},
			{ID: uuid.New(), Name: "Movie Night", PointsRequired: 75, Description: "Choose the movie for movie night"},
			{ID: uuid.New(), Name: "30-min Massage", PointsRequired: 100, Description: "Relaxing massage session"},
			{ID: uuid.New(), Name: "Dinner Out", PointsRequired: 150, Description: "Dinner at your favorite restaurant"},
			{ID: uuid.New(), Name: "Shopping Spree", PointsRequired: 200, Description: "$50 shopping budget"},
			{ID: uuid.New(), Name: "Weekend Getaway", PointsRequired: 500, Description: "Plan a weekend trip"},
		},
	}
}
