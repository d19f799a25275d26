// internal/app/store/aboutus/aboutusstore.go
package aboutusstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/stratacms/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the MongoDB collection holding the About Us document.
const Collection = "aboutus"

// Store provides access to the single About Us document.
type Store struct {
	c *mongo.Collection
}

// New creates a new About Us store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

var byID = bson.M{"_id": models.AboutUsID}

// Get returns the stored document, or Defaults when none exists yet.
// stored reports which one it is. Nothing is written.
func (s *Store) Get(ctx context.Context) (doc models.AboutUs, stored bool, err error) {
	if err := s.c.FindOne(ctx, byID).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Defaults(), false, nil
		}
		return models.AboutUs{}, false, err
	}
	return doc, true, nil
}

// EnsureDefault writes Defaults when no document exists and returns the
// stored document. Concurrent callers converge on one document.
func (s *Store) EnsureDefault(ctx context.Context) (models.AboutUs, error) {
	def := Defaults()
	now := time.Now()
	def.CreatedAt = now
	def.UpdatedAt = now

	insert, err := bson.Marshal(def)
	if err != nil {
		return models.AboutUs{}, err
	}
	var fields bson.M
	if err := bson.Unmarshal(insert, &fields); err != nil {
		return models.AboutUs{}, err
	}
	delete(fields, "_id")

	var out models.AboutUs
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err = s.c.FindOneAndUpdate(ctx, byID, bson.M{"$setOnInsert": fields}, opts).Decode(&out)
	if err != nil {
		return models.AboutUs{}, err
	}
	return out, nil
}

// UpdateInput holds optional fields; nil leaves the stored value untouched.
// TeamImages[i], when non-nil, replaces the image of team member i; images
// past the end of the member list are ignored.
type UpdateInput struct {
	HeroTitle        *string
	HeroSubtitle     *string
	StoryTitle       *string
	StoryContent     *string
	MissionTitle     *string
	MissionContent   *string
	VisionTitle      *string
	VisionContent    *string
	TeamTitle        *string
	TeamSubtitle     *string
	WhyChooseUsTitle *string
	Address          *string
	Phone            *string
	Email            *string
	WorkingHours     *string

	CoreValues        *[]models.CoreValue
	TeamMembers       *[]models.TeamMember
	WhyChooseUsPoints *[]models.WhyChooseUsPoint
	ServiceAreas      *[]models.ServiceArea

	TeamImages []*models.Image
}

// Update applies in on top of the stored document (created from Defaults
// first when absent) and returns the result.
func (s *Store) Update(ctx context.Context, in UpdateInput) (models.AboutUs, error) {
	current, err := s.EnsureDefault(ctx)
	if err != nil {
		return models.AboutUs{}, err
	}

	set := bson.M{"updated_at": time.Now()}
	strs := []struct {
		key string
		val *string
	}{
		{"hero_title", in.HeroTitle},
		{"hero_subtitle", in.HeroSubtitle},
		{"story_title", in.StoryTitle},
		{"story_content", in.StoryContent},
		{"mission_title", in.MissionTitle},
		{"mission_content", in.MissionContent},
		{"vision_title", in.VisionTitle},
		{"vision_content", in.VisionContent},
		{"team_title", in.TeamTitle},
		{"team_subtitle", in.TeamSubtitle},
		{"why_choose_us_title", in.WhyChooseUsTitle},
		{"address", in.Address},
		{"phone", in.Phone},
		{"email", in.Email},
		{"working_hours", in.WorkingHours},
	}
	for _, f := range strs {
		if f.val != nil {
			set[f.key] = *f.val
		}
	}

	if in.CoreValues != nil {
		values := append([]models.CoreValue{}, (*in.CoreValues)...)
		for i := range values {
			if values[i].Icon == "" {
				values[i].Icon = models.DefaultCoreValueIcon
			}
		}
		set["core_values"] = values
	}
	if in.WhyChooseUsPoints != nil {
		set["why_choose_us_points"] = append([]models.WhyChooseUsPoint{}, (*in.WhyChooseUsPoints)...)
	}
	if in.ServiceAreas != nil {
		set["service_areas"] = append([]models.ServiceArea{}, (*in.ServiceAreas)...)
	}

	if in.TeamMembers != nil || len(in.TeamImages) > 0 {
		members := current.TeamMembers
		if in.TeamMembers != nil {
			members = *in.TeamMembers
		}
		members = append([]models.TeamMember{}, members...)
		for i, img := range in.TeamImages {
			if i >= len(members) {
				break
			}
			if img != nil && !img.IsZero() {
				im := *img
				members[i].Image = &im
			}
		}
		set["team_members"] = members
	}

	var out models.AboutUs
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := s.c.FindOneAndUpdate(ctx, byID, bson.M{"$set": set}, opts).Decode(&out); err != nil {
		return models.AboutUs{}, err
	}
	return out, nil
}
