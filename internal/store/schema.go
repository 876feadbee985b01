package store

// DefaultColors seeds the color registry.
var DefaultColors = []string{"white", "red", "yellow", "black", "green", "blue", "orange", "purple", "gray"}

const schemaPostgres = `
create table if not exists colors(
    id bigserial primary key,
    name text unique not null
);

create table if not exists users(
    id bigserial primary key,
    phone_number text unique not null,
    acctag text unique,
    name text not null default '',
    password_hash text not null default '',
    avatar_url text,
    ldap_auth boolean not null default false,
    created_at timestamptz not null
);

create table if not exists boards(
    id bigserial primary key,
    name text not null check (length(name) > 0),
    color_id bigint not null references colors(id),
    creator_id bigint references users(id) on delete set null,
    created_at timestamptz not null
);

create table if not exists board_members(
    board_id bigint not null references boards(id) on delete cascade,
    user_id bigint not null references users(id) on delete cascade,
    joined_at timestamptz not null,
    primary key(board_id, user_id)
);
create index if not exists board_members_user_idx on board_members(user_id);

create table if not exists board_columns(
    id bigserial primary key,
    board_id bigint not null references boards(id) on delete cascade,
    name text not null check (length(name) > 0),
    color_id bigint not null references colors(id)
);
create index if not exists board_columns_board_idx on board_columns(board_id);

create table if not exists records(
    id bigserial primary key,
    column_id bigint not null references board_columns(id) on delete cascade,
    author_id bigint references users(id) on delete set null,
    body text not null,
    created_at timestamptz not null
);
create index if not exists records_column_idx on records(column_id, body);

-- invites outlive their board: history is kept
create table if not exists invites(
    token text primary key,
    board_id bigint not null,
    inviter_id bigint not null,
    status text not null check (status in ('pending', 'accepted', 'declined')),
    created_at timestamptz not null
);
create index if not exists invites_board_idx on invites(board_id);

create table if not exists posts(
    id bigserial primary key,
    user_id bigint not null references users(id) on delete cascade,
    board_id bigint references boards(id) on delete set null,
    body text not null,
    picture text,
    post_date text not null,
    post_time text not null,
    views bigint not null default 0
);
create index if not exists posts_board_idx on posts(board_id);
create index if not exists posts_date_idx on posts(post_date, post_time);
`

const schemaSQLite = `
create table if not exists colors(
    id integer primary key autoincrement,
    name text unique not null
);

create table if not exists users(
    id integer primary key autoincrement,
    phone_number text unique not null,
    acctag text unique,
    name text not null default '',
    password_hash text not null default '',
    avatar_url text,
    ldap_auth boolean not null default false,
    created_at timestamp not null
);

create table if not exists boards(
    id integer primary key autoincrement,
    name text not null check (length(name) > 0),
    color_id integer not null references colors(id),
    creator_id integer references users(id) on delete set null,
    created_at timestamp not null
);

create table if not exists board_members(
    board_id integer not null references boards(id) on delete cascade,
    user_id integer not null references users(id) on delete cascade,
    joined_at timestamp not null,
    primary key(board_id, user_id)
);
create index if not exists board_members_user_idx on board_members(user_id);

create table if not exists board_columns(
    id integer primary key autoincrement,
    board_id integer not null references boards(id) on delete cascade,
    name text not null check (length(name) > 0),
    color_id integer not null references colors(id)
);
create index if not exists board_columns_board_idx on board_columns(board_id);

create table if not exists records(
    id integer primary key autoincrement,
    column_id integer not null references board_columns(id) on delete cascade,
    author_id integer references users(id) on delete set null,
    body text not null,
    created_at timestamp not null
);
create index if not exists records_column_idx on records(column_id, body);

create table if not exists invites(
    token text primary key,
    board_id integer not null,
    inviter_id integer not null,
    status text not null check (status in ('pending', 'accepted', 'declined')),
    created_at timestamp not null
);
create index if not exists invites_board_idx on invites(board_id);

create table if not exists posts(
    id integer primary key autoincrement,
    user_id integer not null references users(id) on delete cascade,
    board_id integer references boards(id) on delete set null,
    body text not null,
    picture text,
    post_date text not null,
    post_time text not null,
    views integer not null default 0
);
create index if not exists posts_board_idx on posts(board_id);
create index if not exists posts_date_idx on posts(post_date, post_time);
`
