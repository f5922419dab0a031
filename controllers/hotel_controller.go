package controllers

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
	"gorm.io/gorm"

	"stayr/config"
	"stayr/dto"
	"stayr/middleware"
	"stayr/models"
	"stayr/response"
	"stayr/services"
)

type HotelController struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewHotelController(db *gorm.DB, rdb *redis.Client) *HotelController {
	return &HotelController{db: db, rdb: rdb}
}

func convertToHotelResponse(hotel models.Hotel) dto.HotelResponse {
	return dto.HotelResponse{
		ID:         hotel.ID,
		OwnerID:    hotel.OwnerID,
		Name:       hotel.Name,
		Address:    hotel.Address,
		City:       hotel.City,
		Country:    hotel.Country,
		StarRating: hotel.StarRating,
		Logo:       hotel.Logo,
		Img:        hotel.Img,
		RoomTypes:  hotel.RoomTypes,
	}
}

// CreateHotel tạo hotel mới cho chủ hotel hiện tại
func (ctl *HotelController) CreateHotel(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var req dto.CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	hotel := models.Hotel{
		OwnerID:    userID,
		Name:       req.Name,
		Address:    req.Address,
		City:       req.City,
		Country:    req.Country,
		StarRating: req.StarRating,
		Logo:       req.Logo,
		Img:        req.Img,
	}
	if err := hotel.ValidateStarRating(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := ctl.db.Create(&hotel).Error; err != nil {
		response.ServerError(c)
		return
	}

	ctl.invalidateHotelCache()
	response.Created(c, convertToHotelResponse(hotel))
}

// GetHotels liệt kê hotel, chủ hotel chỉ thấy hotel của mình
func (ctl *HotelController) GetHotels(c *gin.Context) {
	page := 0
	limit := 10
	if parsed, err := strconv.Atoi(c.Query("page")); err == nil && parsed >= 0 {
		page = parsed
	}
	if parsed, err := strconv.Atoi(c.Query("limit")); err == nil && parsed > 0 {
		limit = parsed
	}

	tx := ctl.db.Model(&models.Hotel{}).Preload("RoomTypes")
	if owner := c.Query("mine"); owner == "true" {
		tx = tx.Where("owner_id = ?", middleware.CurrentUserID(c))
	}
	if city := c.Query("city"); city != "" {
		tx = tx.Where("LOWER(city) = ?", strings.ToLower(city))
	}

	var total int64
	tx.Count(&total)

	var hotels []models.Hotel
	if err := tx.Offset(page * limit).Limit(limit).Order("id").Find(&hotels).Error; err != nil {
		response.ServerError(c)
		return
	}

	hotelResponses := make([]dto.HotelResponse, 0, len(hotels))
	for _, h := range hotels {
		hotelResponses = append(hotelResponses, convertToHotelResponse(h))
	}
	response.SuccessWithPagination(c, hotelResponses, page, limit, int(total))
}

// GetHotelDetail lấy chi tiết một hotel kèm room types
func (ctl *HotelController) GetHotelDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid hotel id")
		return
	}

	var hotel models.Hotel
	if err := ctl.db.Preload("RoomTypes").First(&hotel, id).Error; err != nil {
		response.NotFound(c)
		return
	}
	response.Success(c, convertToHotelResponse(hotel))
}

// UpdateHotel cập nhật hotel, chỉ chủ sở hữu
func (ctl *HotelController) UpdateHotel(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid hotel id")
		return
	}

	var hotel models.Hotel
	if err := ctl.db.First(&hotel, id).Error; err != nil {
		response.NotFound(c)
		return
	}
	if hotel.OwnerID != userID {
		response.Forbidden(c)
		return
	}

	var req dto.UpdateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if req.City != "" {
		updates["city"] = req.City
	}
	if req.Country != "" {
		updates["country"] = req.Country
	}
	if req.StarRating != nil {
		hotel.StarRating = *req.StarRating
		if err := hotel.ValidateStarRating(); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		updates["star_rating"] = *req.StarRating
	}
	if req.Logo != "" {
		updates["logo"] = req.Logo
	}
	if req.Img != nil {
		updates["img"] = req.Img
	}

	if err := ctl.db.Model(&hotel).Updates(updates).Error; err != nil {
		response.ServerError(c)
		return
	}

	ctl.invalidateHotelCache()
	response.Success(c, convertToHotelResponse(hotel))
}

// DeleteHotel xóa hotel, chỉ chủ sở hữu
func (ctl *HotelController) DeleteHotel(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid hotel id")
		return
	}

	var hotel models.Hotel
	if err := ctl.db.First(&hotel, id).Error; err != nil {
		response.NotFound(c)
		return
	}
	if hotel.OwnerID != userID {
		response.Forbidden(c)
		return
	}

	if err := ctl.db.Delete(&hotel).Error; err != nil {
		response.ServerError(c)
		return
	}

	ctl.invalidateHotelCache()
	response.Success(c, gin.H{"message": "Hotel deleted"})
}

// SearchHotels tìm hotel theo query tự do: chấm điểm city/country/name
// bằng closestmatch + levenshtein trên chuỗi đã bỏ dấu
func (ctl *HotelController) SearchHotels(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.BadRequest(c, "Query parameter q is required")
		return
	}

	cacheKey := "hotels:all"
	var hotels []models.Hotel
	if err := services.GetFromRedis(config.Ctx, ctl.rdb, cacheKey, &hotels); err != nil || len(hotels) == 0 {
		if err := ctl.db.Preload("RoomTypes").Find(&hotels).Error; err != nil {
			response.ServerError(c)
			return
		}
		_ = services.SetToRedis(config.Ctx, ctl.rdb, cacheKey, hotels, 10*time.Minute)
	}

	cmCity := createMatcher(prepareUniqueList(hotels, "city"))
	cmCountry := createMatcher(prepareUniqueList(hotels, "country"))

	scored := filterAndScoreHotels(query, hotels, cmCity, cmCountry)

	hotelResponses := make([]dto.HotelResponse, 0, len(scored))
	for _, s := range scored {
		hotelResponses = append(hotelResponses, convertToHotelResponse(s.Hotel))
	}
	response.Success(c, hotelResponses)
}

func (ctl *HotelController) invalidateHotelCache() {
	_ = services.DeleteFromRedis(config.Ctx, ctl.rdb, "hotels:all")
}

// normalizeInput chuẩn hóa chuỗi để so khớp không phân biệt dấu
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ToLower(unidecode.Unidecode(input))
	return input
}

func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

// calculateSimilarity tính độ tương đồng giữa hai chuỗi
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len(a))
	if float64(len(b)) > maxLen {
		maxLen = float64(len(b))
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/maxLen
}

func prepareUniqueList(hotels []models.Hotel, field string) []string {
	uniqueValues := make(map[string]bool)
	for _, h := range hotels {
		var value string
		switch field {
		case "city":
			value = h.City
		case "country":
			value = h.Country
		}
		if value != "" {
			uniqueValues[normalizeInput(value)] = true
		}
	}

	uniqueList := make([]string, 0, len(uniqueValues))
	for val := range uniqueValues {
		uniqueList = append(uniqueList, val)
	}
	return uniqueList
}

func calculateHotelScore(query string, hotel models.Hotel, cmCity, cmCountry *closestmatch.ClosestMatch) int {
	normalizedQuery := normalizeInput(query)
	score := 0

	if cmCity.Closest(normalizedQuery) == normalizeInput(hotel.City) {
		score += 13
	}
	if cmCountry.Closest(normalizedQuery) == normalizeInput(hotel.Country) {
		score += 5
	}

	normalizedName := normalizeInput(hotel.Name)
	if strings.Contains(normalizedQuery, normalizedName) || strings.Contains(normalizedName, normalizedQuery) {
		score += 20
	} else if calculateSimilarity(normalizedQuery, normalizedName) > 0.7 {
		score += 10
	}

	if rating := extractRatingFromQuery(normalizedQuery); rating != -1 && hotel.StarRating == rating {
		score += 8
	}
	return score
}

// extractRatingFromQuery bắt số sao trong query, ví dụ "4 star"
func extractRatingFromQuery(query string) int {
	var rating int
	if _, err := fmt.Sscanf(query, "%d star", &rating); err == nil && rating >= 1 && rating <= 5 {
		return rating
	}
	for _, token := range strings.Fields(query) {
		if n, err := strconv.Atoi(token); err == nil && n >= 1 && n <= 5 && strings.Contains(query, "star") {
			return n
		}
	}
	return -1
}

func filterAndScoreHotels(query string, hotels []models.Hotel, cmCity, cmCountry *closestmatch.ClosestMatch) []dto.ScoredHotel {
	scoreCh := make(chan dto.ScoredHotel, len(hotels))
	var wg sync.WaitGroup

	for _, hotel := range hotels {
		wg.Add(1)
		go func(hotel models.Hotel) {
			defer wg.Done()
			score := calculateHotelScore(query, hotel, cmCity, cmCountry)
			if score > 0 {
				scoreCh <- dto.ScoredHotel{Hotel: hotel, Score: score}
			}
		}(hotel)
	}

	go func() {
		wg.Wait()
		close(scoreCh)
	}()

	var scored []dto.ScoredHotel
	for s := range scoreCh {
		scored = append(scored, s)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}
