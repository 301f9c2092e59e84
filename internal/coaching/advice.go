package coaching

// Advice returns the advice library for one skill area, extended with
// profile-conditional entries for beginners and duelists.
func (c *Coach) Advice(area string) []string {
	switch area {
	case "crosshair_placement":
		advice := []string{
			"Always keep your crosshair at head level",
			"Pre-aim common angles where enemies might appear",
			"Practice flicking to different head heights",
			"Use the Range to practice crosshair placement",
			"Don't look at the ground - keep your crosshair up",
		}
		if c.profile.SkillLevel == "beginner" {
			advice = append(advice,
				"Start with a simple crosshair and practice in the Range",
				"Focus on keeping your crosshair steady while moving",
			)
		}
		return advice

	case "movement":
		advice := []string{
			"Learn counter-strafing to stop quickly",
			"Don't move while shooting unless necessary",
			"Use movement to peek angles efficiently",
			"Practice strafe shooting in the Range",
			"Use sound cues to time your movements",
		}
		if c.profile.PrimaryRole == "duelist" {
			advice = append(advice,
				"As a duelist, focus on aggressive movement and entry fragging",
				"Use abilities to create movement opportunities",
			)
		}
		return advice

	case "positioning":
		return []string{
			"Always have cover nearby",
			"Don't expose yourself to multiple angles",
			"Use off-angles to catch enemies off guard",
			"Position yourself to help your team",
			"Learn common positions for each map",
		}

	case "game_sense":
		return []string{
			"Learn common timings and rotations",
			"Communicate with your team effectively",
			"Understand economy and buy rounds",
			"Learn from your mistakes and adapt",
			"Watch professional players to learn strategies",
		}

	case "mechanics":
		return []string{
			"Practice recoil control with different weapons",
			"Learn spray patterns for your main weapons",
			"Practice flicking and tracking in the Range",
			"Work on your reaction time",
			"Use aim training maps to improve accuracy",
		}

	default:
		return []string{"Focus on improving your overall gameplay fundamentals."}
	}
}

// exercisesForArea is the fixed training-plan exercise list per area.
func exercisesForArea(area string) []string {
	switch area {
	case "crosshair_placement":
		return []string{
			"Practice in the Range with different weapons",
			"Use aim training maps focusing on head level",
			"Practice pre-aiming common angles",
			"Work on crosshair placement while moving",
		}
	case "movement":
		return []string{
			"Practice counter-strafing in the Range",
			"Work on strafe shooting",
			"Practice movement while maintaining accuracy",
			"Learn efficient peeking techniques",
		}
	case "positioning":
		return []string{
			"Study common positions on each map",
			"Practice holding angles",
			"Work on off-angle positioning",
			"Learn rotation timings",
		}
	case "game_sense":
		return []string{
			"Watch professional matches",
			"Review your own gameplay",
			"Learn economy management",
			"Practice communication with team",
		}
	case "mechanics":
		return []string{
			"Practice recoil control",
			"Work on flicking and tracking",
			"Use aim training maps",
			"Practice with different weapons",
		}
	default:
		return []string{"General practice and improvement"}
	}
}

// goalForArea is the fixed training-plan goal string per area.
func goalForArea(area string) string {
	switch area {
	case "crosshair_placement":
		return "Improve crosshair placement accuracy by 20%"
	case "movement":
		return "Master counter-strafing and efficient movement"
	case "positioning":
		return "Learn optimal positions for each map"
	case "game_sense":
		return "Improve decision making and team coordination"
	case "mechanics":
		return "Improve overall accuracy and recoil control"
	default:
		return "Improve overall performance"
	}
}
