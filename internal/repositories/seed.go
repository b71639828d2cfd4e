package repositories

import "github.com/hwllojeena/bucket-list/internal/models"

// defaultTitles は初回起動時に使う既定の50項目です。
var defaultTitles = []string{
	"Go on a Stargazing Date",
	"Take a Cooking Class Together",
	"Watch the Sunrise on a Beach",
	"Visit a Sweet Theme Park",
	"Have a Romantic Picnic",
	"Take a Pottery Class",
	"Go Ice Skating Together",
	"Build a Cozy Blanket Fort",
	"Go on a Spontaneous Road Trip",
	"Dance Together under the Rain",
	"Have a Movie Marathon",
	"Visit a Museum or Art Gallery",
	"Go Fruit Picking",
	"Take a Karaoke Challenge",
	"Bake a Cake from Scratch",
	"Go to a Drive-in Theater",
	"Try a New Sport Together",
	"Have a No-Phones Dinner Date",
	"Go to a Local Concert",
	"Visit a Botanical Garden",
	"Go Camping or Glamping",
	"Take a Dance Lesson",
	"Go to a Wine Tasting",
	"Have a Themed Photo Shoot",
	"Volunteer Together",
	"Go on a Morning Hike",
	"Try Indoor Skydiving",
	"Take a Hot Air Balloon Ride",
	"Go Whale Watching",
	"Visit a Landmark Together",
	"Write Each Other Love Letters",
	"Go Bowling Together",
	"Visit an Aquarium",
	"Go to a Comedy Show",
	"Have a Game Night",
	"Take a DIY Workshop",
	"Go to a High Tea",
	"Try a New Cuisine",
	"Go for a Sunset Boat Ride",
	"Have a Rooftop Dinner",
	"Go to a Flea Market",
	"Take a Professional Photo Class",
	"Visit a Castle or Historic Site",
	"Go Ice-Cream Tasting",
	"Have a Spa Day at Home",
	"Make a Scrapbook Together",
	"Go Bird Watching",
	"Take a Train Trip",
	"Have a Breakfast in Bed",
	"Plan Your Next Big Travel",
}

// DefaultTasks は未達成状態の既定タスク一覧を生成します (ID 1..50)。
func DefaultTasks() []models.Task {
	tasks := make([]models.Task, len(defaultTitles))
	for i, title := range defaultTitles {
		tasks[i] = models.Task{
			ID:         int64(i + 1),
			OrderIndex: i,
			Title:      title,
		}
	}
	return tasks
}
