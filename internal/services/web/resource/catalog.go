package resource

// Resource names used as route segments and schema identifiers.
const (
	Activities = "activities"
	Teams      = "teams"
	Users      = "users"
	Workouts   = "workouts"
)

// Catalog returns the schemas of every collection view in navigation order.
func Catalog() []Schema {
	return []Schema{
		ActivitiesSchema(),
		TeamsSchema(),
		UsersSchema(),
		WorkoutsSchema(),
	}
}

// Lookup finds a catalog schema by name.
func Lookup(name string) (Schema, bool) {
	for _, schema := range Catalog() {
		if schema.Name == name {
			return schema, true
		}
	}
	return Schema{}, false
}

// ActivitiesSchema describes the logged activities collection.
func ActivitiesSchema() Schema {
	return Schema{
		Name:     Activities,
		Endpoint: "activities/",
		IDField:  DefaultIDField,
		Fields: []Field{
			{Name: "id", Kind: KindNumber, LabelKey: "field.id"},
			{Name: "user", Kind: KindJSON, LabelKey: "field.user"},
			{Name: "type", Kind: KindText, Editable: true, LabelKey: "field.type"},
			{Name: "duration", Kind: KindNumber, Editable: true, LabelKey: "field.duration"},
			{Name: "date", Kind: KindDate, Editable: true, LabelKey: "field.date"},
			{Name: "created_at", Kind: KindText, LabelKey: "field.created_at"},
		},
		Forms: []FormSpec{{
			Name:     "create",
			Endpoint: "activities/",
			Fields: []Field{
				{Name: "type", Kind: KindText, Required: true, LabelKey: "field.type"},
				{Name: "duration", Kind: KindNumber, Required: true, LabelKey: "field.duration_minutes"},
				{Name: "date", Kind: KindDate, Required: true, LabelKey: "field.date"},
			},
			TitleKey:   "activities.form.title",
			SubmitKey:  "activities.form.submit",
			SuccessKey: "activities.form.success",
		}},
		TitleKey:        "activities.title",
		LoadingKey:      "activities.loading",
		DeletePromptKey: "activities.delete.prompt",
	}
}

// TeamsSchema describes the teams collection, including the join form.
func TeamsSchema() Schema {
	return Schema{
		Name:     Teams,
		Endpoint: "teams/",
		IDField:  DefaultIDField,
		Fields: []Field{
			{Name: "id", Kind: KindNumber, LabelKey: "field.id"},
			{Name: "name", Kind: KindText, Editable: true, LabelKey: "field.name"},
			{Name: "description", Kind: KindText, Editable: true, LabelKey: "field.description"},
			{Name: "join_code", Kind: KindText, LabelKey: "field.join_code"},
			{Name: "members", Kind: KindJSON, LabelKey: "field.members"},
			{Name: "created_at", Kind: KindText, LabelKey: "field.created_at"},
		},
		Forms: []FormSpec{
			{
				Name:       "create",
				Endpoint:   "teams/",
				Fields:     []Field{{Name: "name", Kind: KindText, Required: true, LabelKey: "teams.form.create_label"}},
				TitleKey:   "teams.form.title",
				SubmitKey:  "teams.form.create_submit",
				SuccessKey: "teams.form.create_success",
			},
			{
				Name:       "join",
				Endpoint:   "teams/join/",
				Fields:     []Field{{Name: "join_code", Kind: KindText, Required: true, LabelKey: "teams.form.join_label"}},
				TitleKey:   "teams.form.join_title",
				SubmitKey:  "teams.form.join_submit",
				SuccessKey: "teams.form.join_success",
			},
		},
		TitleKey:        "teams.title",
		LoadingKey:      "teams.loading",
		DeletePromptKey: "teams.delete.prompt",
	}
}

// UsersSchema describes the users collection. Users are created through
// registration, so the view has no create form.
func UsersSchema() Schema {
	return Schema{
		Name:     Users,
		Endpoint: "users/",
		IDField:  DefaultIDField,
		Fields: []Field{
			{Name: "id", Kind: KindNumber, LabelKey: "field.id"},
			{Name: "username", Kind: KindText, Editable: true, LabelKey: "field.username"},
			{Name: "name", Kind: KindText, Editable: true, LabelKey: "field.name"},
			{Name: "email", Kind: KindEmail, Editable: true, LabelKey: "field.email"},
			{Name: "team", Kind: KindJSON, LabelKey: "field.team"},
			{Name: "created_at", Kind: KindText, LabelKey: "field.created_at"},
			{Name: "last_login", Kind: KindText, LabelKey: "field.last_login"},
			{Name: "date_joined", Kind: KindText, LabelKey: "field.date_joined"},
		},
		TitleKey:        "users.title",
		LoadingKey:      "users.loading",
		DeletePromptKey: "users.delete.prompt",
	}
}

// WorkoutsSchema describes the suggested workouts collection.
func WorkoutsSchema() Schema {
	return Schema{
		Name:     Workouts,
		Endpoint: "workouts/",
		IDField:  DefaultIDField,
		Fields: []Field{
			{Name: "id", Kind: KindNumber, LabelKey: "field.id"},
			{Name: "user", Kind: KindJSON, LabelKey: "field.user"},
			{Name: "name", Kind: KindText, Editable: true, LabelKey: "field.name"},
			{Name: "description", Kind: KindText, Editable: true, LabelKey: "field.description"},
			{Name: "suggested_for", Kind: KindText, Editable: true, LabelKey: "field.suggested_for"},
			{Name: "duration", Kind: KindNumber, Editable: true, LabelKey: "field.duration"},
			{Name: "date", Kind: KindDate, Editable: true, LabelKey: "field.date"},
			{Name: "created_at", Kind: KindText, LabelKey: "field.created_at"},
		},
		Forms: []FormSpec{{
			Name:     "create",
			Endpoint: "workouts/",
			Fields: []Field{
				{Name: "name", Kind: KindText, Required: true, LabelKey: "field.name"},
				{Name: "description", Kind: KindText, LabelKey: "field.description"},
				{Name: "suggested_for", Kind: KindText, LabelKey: "field.suggested_for"},
			},
			TitleKey:   "workouts.form.title",
			SubmitKey:  "workouts.form.submit",
			SuccessKey: "workouts.form.success",
		}},
		TitleKey:        "workouts.title",
		LoadingKey:      "workouts.loading",
		DeletePromptKey: "workouts.delete.prompt",
	}
}
