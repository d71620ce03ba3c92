package sqlite

// schema is the bit-stable table contract. Every child table declares ON
// DELETE CASCADE back to its owning root; DeleteListCascade additionally
// deletes the dependency edges touching a deleted list's items explicitly
// rather than relying solely on the foreign keys, since a dependency's
// endpoints can live in different lists.
const schema = `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS lists (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    list_key TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'active',
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS todo_items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    list_id INTEGER NOT NULL REFERENCES lists(id) ON DELETE CASCADE,
    parent_item_id INTEGER REFERENCES todo_items(id) ON DELETE CASCADE,
    item_key TEXT NOT NULL,
    content TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'pending',
    position INTEGER NOT NULL,
    started_at DATETIME,
    completed_at DATETIME,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    -- Sibling-scoped uniqueness: item_key is unique only within (list_id,
    -- parent_item_id), never list-wide. Earlier schema generations used
    -- UNIQUE(list_id, item_key); migration 001 replaces that index.
    UNIQUE(list_id, parent_item_id, item_key)
);

CREATE INDEX IF NOT EXISTS idx_items_list_status_position ON todo_items(list_id, status, position);
CREATE INDEX IF NOT EXISTS idx_items_parent ON todo_items(list_id, parent_item_id);

CREATE TABLE IF NOT EXISTS item_completion_states (
    item_id INTEGER NOT NULL REFERENCES todo_items(id) ON DELETE CASCADE,
    state_key TEXT NOT NULL,
    state_value INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (item_id, state_key)
);

CREATE TABLE IF NOT EXISTS item_dependencies (
    dependent_item_id INTEGER NOT NULL REFERENCES todo_items(id) ON DELETE CASCADE,
    required_item_id INTEGER NOT NULL REFERENCES todo_items(id) ON DELETE CASCADE,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (dependent_item_id, required_item_id)
);

CREATE INDEX IF NOT EXISTS idx_deps_dependent ON item_dependencies(dependent_item_id);
CREATE INDEX IF NOT EXISTS idx_deps_required ON item_dependencies(required_item_id);

CREATE TABLE IF NOT EXISTS list_tags (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    color TEXT NOT NULL DEFAULT '#808080'
);

CREATE TABLE IF NOT EXISTS list_tag_assignments (
    list_id INTEGER NOT NULL REFERENCES lists(id) ON DELETE CASCADE,
    tag_id INTEGER NOT NULL REFERENCES list_tags(id) ON DELETE CASCADE,
    PRIMARY KEY (list_id, tag_id)
);

CREATE INDEX IF NOT EXISTS idx_tag_assignments_tag ON list_tag_assignments(tag_id);

CREATE TABLE IF NOT EXISTS list_properties (
    list_id INTEGER NOT NULL REFERENCES lists(id) ON DELETE CASCADE,
    key TEXT NOT NULL,
    value TEXT NOT NULL,
    PRIMARY KEY (list_id, key)
);

CREATE TABLE IF NOT EXISTS item_properties (
    item_id INTEGER NOT NULL REFERENCES todo_items(id) ON DELETE CASCADE,
    key TEXT NOT NULL,
    value TEXT NOT NULL,
    PRIMARY KEY (item_id, key)
);

CREATE TABLE IF NOT EXISTS history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    entity_type TEXT NOT NULL,
    entity_id INTEGER NOT NULL,
    action TEXT NOT NULL,
    old_value TEXT,
    new_value TEXT,
    actor TEXT,
    timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_history_entity ON history(entity_type, entity_id, timestamp);

CREATE TABLE IF NOT EXISTS schema_meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`
