package db

import "time"

// Question maps proxyfaqs.questions: one published FAQ article per slug.
// search_vector is maintained by raw SQL in the upsert path and the
// post-migrate script, so it is not part of the gorm model.
type Question struct {
	QuestionID      int64     `gorm:"column:question_id;primaryKey;autoIncrement"`
	Slug            string    `gorm:"column:slug;type:text;not null;unique"`
	Question        string    `gorm:"column:question;type:text;not null"`
	Answer          string    `gorm:"column:answer;type:text;not null"`
	Category        string    `gorm:"column:category;type:text;not null;default:General"`
	CategorySlug    string    `gorm:"column:category_slug;type:text;not null;default:general"`
	MetaTitle       string    `gorm:"column:meta_title;type:text;not null;default:''"`
	MetaDescription string    `gorm:"column:meta_description;type:text;not null;default:''"`
	SourceKeyword   string    `gorm:"column:source_keyword;type:text;not null;default:''"`
	SourceURL       string    `gorm:"column:source_url;type:text;not null;default:''"`
	ViewCount       int       `gorm:"column:view_count;type:integer;not null;default:0"`
	Volume          int       `gorm:"column:volume;type:integer;not null;default:0"`
	Difficulty      *int      `gorm:"column:difficulty;type:integer"`
	WordCount       int       `gorm:"column:word_count;type:integer;not null;default:0"`
	CreatedAt       time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"`
	UpdatedAt       time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()"`
}

func (Question) TableName() string { return "proxyfaqs.questions" }

func autoMigrateModels() []any {
	return []any{
		&Question{},
	}
}
