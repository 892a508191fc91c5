package postgres

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	"github.com/Alijeyrad/uat_backend/internal/version"
)

const (
	questionsTable = "questions"
	versionsTable  = "versions"
	revisionsTable = "question_revisions"
)

var (
	// QuestionsColumns hold one row per question identity. Only the fields
	// that never change after creation live here.
	QuestionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "name", Type: field.TypeString},
		{Name: "enumerator_id", Type: field.TypeInt64, Nullable: true},
		{Name: "path_segment", Type: field.TypeString},
		{Name: "question_type", Type: field.TypeString},
		{Name: "created_at", Type: field.TypeTime},
	}
	QuestionsTable = &schema.Table{
		Name:       questionsTable,
		Columns:    QuestionsColumns,
		PrimaryKey: []*schema.Column{QuestionsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "question_storage", Columns: []*schema.Column{QuestionsColumns[3], QuestionsColumns[2]}},
		},
	}

	VersionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "lifecycle_stage", Type: field.TypeEnum, Enums: []string{
			string(version.StageActive), string(version.StageDraft), string(version.StageObsolete),
		}},
		{Name: "submit_time", Type: field.TypeTime, Nullable: true},
		{Name: "created_at", Type: field.TypeTime},
	}
	VersionsTable = &schema.Table{
		Name:       versionsTable,
		Columns:    VersionsColumns,
		PrimaryKey: []*schema.Column{VersionsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "version_lifecycle_stage", Columns: []*schema.Column{VersionsColumns[1]}},
		},
	}

	// QuestionRevisionsColumns hold the full definition of a question as of
	// one version.
	QuestionRevisionsColumns = []*schema.Column{
		{Name: "version_id", Type: field.TypeInt64},
		{Name: "question_id", Type: field.TypeInt64},
		{Name: "definition", Type: field.TypeJSON},
	}
	QuestionRevisionsTable = &schema.Table{
		Name:       revisionsTable,
		Columns:    QuestionRevisionsColumns,
		PrimaryKey: []*schema.Column{QuestionRevisionsColumns[0], QuestionRevisionsColumns[1]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "question_revisions_versions_revisions",
				Columns:    []*schema.Column{QuestionRevisionsColumns[0]},
				RefColumns: []*schema.Column{VersionsColumns[0]},
				OnDelete:   schema.Cascade,
			},
			{
				Symbol:     "question_revisions_questions_revisions",
				Columns:    []*schema.Column{QuestionRevisionsColumns[1]},
				RefColumns: []*schema.Column{QuestionsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
	}

	// Tables lists every table in migration order.
	Tables = []*schema.Table{
		QuestionsTable,
		VersionsTable,
		QuestionRevisionsTable,
	}
)

func init() {
	QuestionRevisionsTable.ForeignKeys[0].RefTable = VersionsTable
	QuestionRevisionsTable.ForeignKeys[1].RefTable = QuestionsTable
}
