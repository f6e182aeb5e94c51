package statistics

import (
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/mishatunikov/blogicum/app/models"
	"github.com/mishatunikov/blogicum/internal/pkg/cache"
	"github.com/mishatunikov/blogicum/internal/pkg/database"
)

const (
	CacheKeyUsersTotal    = "statistics:users:total"
	CacheKeyPostsTotal    = "statistics:posts:total"
	CacheKeyCommentsTotal = "statistics:comments:total"
	CacheExpiration       = 30 * time.Minute
)

// StatisticsData holds the sitewide counters shown on the index page
type StatisticsData struct {
	TotalUsers    int
	TotalPosts    int
	TotalComments int
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache reports whether the cache is due for a refresh
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cache when the interval has elapsed
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Error updating statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// UpdateStatisticsCache updates all statistics in the cache
func UpdateStatisticsCache() error {
	db := database.GetDB()

	var totalUsers int64
	if err := db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		log.Printf("Error counting users: %v", err)
		return err
	}

	var totalPosts int64
	if err := db.Model(&models.Post{}).Count(&totalPosts).Error; err != nil {
		log.Printf("Error counting posts: %v", err)
		return err
	}

	var totalComments int64
	if err := db.Model(&models.Comment{}).Count(&totalComments).Error; err != nil {
		log.Printf("Error counting comments: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyUsersTotal, strconv.FormatInt(totalUsers, 10), CacheExpiration); err != nil {
		return err
	}
	if err := cache.Set(CacheKeyPostsTotal, strconv.FormatInt(totalPosts, 10), CacheExpiration); err != nil {
		return err
	}
	return cache.Set(CacheKeyCommentsTotal, strconv.FormatInt(totalComments, 10), CacheExpiration)
}

// GetStatistics returns the cached counters, refreshing the cache on a miss
func GetStatistics() StatisticsData {
	UpdateCacheIfNeeded()

	data := StatisticsData{}

	if v, err := cache.GetInt(CacheKeyUsersTotal); err == nil {
		data.TotalUsers = v
	}
	if v, err := cache.GetInt(CacheKeyPostsTotal); err == nil {
		data.TotalPosts = v
	}
	if v, err := cache.GetInt(CacheKeyCommentsTotal); err == nil {
		data.TotalComments = v
	}

	return data
}
