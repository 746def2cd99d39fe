package main

import (
	"flag"
	"fmt"

	"vidtube/pkg/config"
	"vidtube/pkg/database"
	"vidtube/pkg/logger"
	"vidtube/pkg/models"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const sampleMediaBase = "https://storage.googleapis.com/gtv-videos-bucket/sample"

var sampleVideos = []struct {
	file     string
	title    string
	duration float64
}{
	{"BigBuckBunny", "Big Buck Bunny", 596},
	{"ElephantsDream", "Elephants Dream", 653},
	{"ForBiggerBlazes", "For Bigger Blazes", 15},
	{"ForBiggerEscapes", "For Bigger Escapes", 15},
	{"Sintel", "Sintel", 888},
	{"TearsOfSteel", "Tears of Steel", 734},
}

func main() {
	var videosPerUser int
	flag.IntVar(&videosPerUser, "videos", 3, "videos to create per new user")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New().Named("seed")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, videosPerUser, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded")
}

func seedDatabase(db *gorm.DB, videosPerUser int, log *logger.Logger) error {
	testUsers := []struct {
		email    string
		username string
		fullname string
	}{
		{"alice@test.com", "alice", "Alice Archer"},
		{"bob@test.com", "bob", "Bob Baker"},
		{"charlie@test.com", "charlie", "Charlie Cole"},
		{"diana@test.com", "diana", "Diana Dale"},
		{"eve@test.com", "eve", "Eve Ellis"},
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	var created []*models.User
	var all []string
	for _, u := range testUsers {
		var existing models.User
		if err := db.Where("email = ? OR username = ?", u.email, u.username).First(&existing).Error; err == nil {
			log.Info("User %s already exists, skipping", existing.Username)
			all = append(all, existing.ID)
			continue
		}

		user := &models.User{
			Email:    u.email,
			Username: u.username,
			Fullname: u.fullname,
			Password: string(hashed),
		}
		if err := db.Create(user).Error; err != nil {
			log.Error("Failed to create user %s: %v", u.username, err)
			continue
		}
		log.Info("Created user %s (%s)", user.Username, user.Email)
		created = append(created, user)
		all = append(all, user.ID)
	}

	for i, user := range created {
		if err := seedChannel(db, user, i, videosPerUser, all, log); err != nil {
			return err
		}
	}

	for i := range all {
		for j := range all {
			if i == j || (i+j)%2 == 1 {
				continue
			}
			sub := &models.Subscription{SubscriberID: all[i], ChannelID: all[j]}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(sub).Error; err != nil {
				log.Error("Failed to subscribe %s to %s: %v", all[i], all[j], err)
			}
		}
	}

	log.Info("Seeded %d new users", len(created))
	return nil
}

// seedChannel gives a new user videos, a tweet, a playlist of those videos,
// and lets every other user comment on and like them.
func seedChannel(db *gorm.DB, user *models.User, index, videosPerUser int, audience []string, log *logger.Logger) error {
	videoIDs := make([]string, 0, videosPerUser)
	for i := 0; i < videosPerUser; i++ {
		sample := sampleVideos[(index+i)%len(sampleVideos)]
		video := &models.Video{
			OwnerID:      user.ID,
			Title:        fmt.Sprintf("%s (%s #%d)", sample.title, user.Username, i+1),
			Description:  fmt.Sprintf("Sample upload %d from %s", i+1, user.Fullname),
			VideoURL:     fmt.Sprintf("%s/%s.mp4", sampleMediaBase, sample.file),
			ThumbnailURL: fmt.Sprintf("%s/images/%s.jpg", sampleMediaBase, sample.file),
			Duration:     sample.duration,
			Views:        int64((index + 1) * (i + 1) * 10),
			IsPublished:  true,
		}
		if err := db.Create(video).Error; err != nil {
			return fmt.Errorf("failed to create video for %s: %w", user.Username, err)
		}
		// the column default would override a false value on insert
		if i > 0 && i == videosPerUser-1 {
			if err := db.Model(video).Update("is_published", false).Error; err != nil {
				log.Error("Failed to unpublish video %s: %v", video.ID, err)
			}
		}
		videoIDs = append(videoIDs, video.ID)

		for _, viewer := range audience {
			if viewer == user.ID {
				continue
			}
			comment := &models.Comment{
				Content: fmt.Sprintf("Nice one, %s!", user.Username),
				VideoID: video.ID,
				OwnerID: viewer,
			}
			if err := db.Create(comment).Error; err != nil {
				log.Error("Failed to create comment on %s: %v", video.ID, err)
				continue
			}

			like := &models.Like{LikedBy: viewer}
			like.SetTarget(models.LikeKindVideo, video.ID)
			if err := db.Create(like).Error; err != nil {
				log.Error("Failed to like video %s: %v", video.ID, err)
			}
		}
	}

	tweet := &models.Tweet{
		Content: fmt.Sprintf("Hi, I'm %s and I just uploaded %d videos", user.Fullname, len(videoIDs)),
		OwnerID: user.ID,
	}
	if err := db.Create(tweet).Error; err != nil {
		return fmt.Errorf("failed to create tweet for %s: %w", user.Username, err)
	}

	if len(videoIDs) > 0 {
		playlist := &models.Playlist{
			Name:        fmt.Sprintf("%s's uploads", user.Username),
			Description: "Everything on this channel",
			OwnerID:     user.ID,
			Videos:      pq.StringArray(videoIDs),
		}
		if err := db.Create(playlist).Error; err != nil {
			return fmt.Errorf("failed to create playlist for %s: %w", user.Username, err)
		}
	}

	log.Info("Seeded channel %s with %d videos", user.Username, len(videoIDs))
	return nil
}
